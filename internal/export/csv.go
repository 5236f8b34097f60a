package export

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sitebook-dev/sitebook/internal/model"
	"github.com/sitebook-dev/sitebook/internal/store"
)

// CSV headers, matching the database column order.
const (
	accountsHeader   = "code,name,type"
	projectsHeader   = "id,project_code,name,client_name,location,contract_value,start_date,status,project_type"
	journalHeader    = "id,tx_id,date,account_code,description,debit,credit,ref,project_code"
	cashBookHeader   = "id,date,project_code,description,method,ref_no,debit,credit,remarks"
	invoicesHeader   = "id,invoice_no,date,project_code,client_name,description,amount,status,remarks"
	debtsFixedHeader = "id,kind,name,project_code,amount,start_date,remarks"
)

// amt renders a money cell, leaving zeros empty like a hand-kept
// ledger would.
func amt(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.StringFixed(2)
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(model.DateLayout)
}

func accountRows(ctx context.Context, st *store.Store) ([][]string, error) {
	accounts, err := st.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(accounts))
	for i, a := range accounts {
		rows[i] = []string{
			a.Code,
			a.Name,
			string(a.Type),
		}
	}
	return rows, nil
}

func projectRows(ctx context.Context, st *store.Store) ([][]string, error) {
	projects, err := st.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(projects))
	for i, p := range projects {
		rows[i] = []string{
			strconv.FormatInt(p.ID, 10),
			p.Code,
			p.Name,
			p.ClientName,
			p.Location,
			p.ContractValue.StringFixed(2),
			fmtDate(p.StartDate),
			string(p.Status),
			p.Type,
		}
	}
	return rows, nil
}

func journalRows(ctx context.Context, st *store.Store) ([][]string, error) {
	entries, err := st.ListEntries(ctx, store.EntryFilter{})
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			strconv.FormatInt(e.ID, 10),
			strconv.FormatInt(e.TxID, 10),
			fmtDate(e.Date),
			e.AccountCode,
			e.Description,
			amt(e.Debit),
			amt(e.Credit),
			e.Reference,
			e.ProjectCode,
		}
	}
	return rows, nil
}

func cashBookRows(ctx context.Context, st *store.Store) ([][]string, error) {
	lines, err := st.ListCashLines(ctx, store.CashFilter{})
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(lines))
	for i, l := range lines {
		rows[i] = []string{
			strconv.FormatInt(l.ID, 10),
			fmtDate(l.Date),
			l.ProjectCode,
			l.Description,
			l.Method,
			l.RefNo,
			amt(l.Debit),
			amt(l.Credit),
			l.Remarks,
		}
	}
	return rows, nil
}

func invoiceRows(ctx context.Context, st *store.Store) ([][]string, error) {
	invoices, err := st.ListInvoices(ctx, store.InvoiceFilter{})
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(invoices))
	for i, inv := range invoices {
		rows[i] = []string{
			strconv.FormatInt(inv.ID, 10),
			inv.InvoiceNo,
			fmtDate(inv.Date),
			inv.ProjectCode,
			inv.ClientName,
			inv.Description,
			inv.Amount.StringFixed(2),
			string(inv.Status),
			inv.Remarks,
		}
	}
	return rows, nil
}

func debtRows(ctx context.Context, st *store.Store) ([][]string, error) {
	records, err := st.ListDebts(ctx, store.DebtFilter{})
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(records))
	for i, d := range records {
		rows[i] = []string{
			strconv.FormatInt(d.ID, 10),
			string(d.Kind),
			d.Name,
			d.ProjectCode,
			d.Amount.StringFixed(2),
			fmtDate(d.StartDate),
			d.Remarks,
		}
	}
	return rows, nil
}
