package books

import "github.com/sitebook-dev/sitebook/internal/model"

// DefaultChart returns the default chart of accounts for a
// construction contractor.
func DefaultChart() []model.Account {
	return []model.Account{
		{Code: "1010", Name: "Cash on Hand", Type: model.AccountTypeAsset},
		{Code: "1020", Name: "Project Bank", Type: model.AccountTypeAsset},
		{Code: "1110", Name: "Accounts Receivable", Type: model.AccountTypeAsset},
		{Code: "1120", Name: "Retention Receivable", Type: model.AccountTypeAsset},
		{Code: "1510", Name: "Equipment & Machinery", Type: model.AccountTypeAsset},
		{Code: "1520", Name: "Vehicles", Type: model.AccountTypeAsset},
		{Code: "2010", Name: "Accounts Payable", Type: model.AccountTypeLiability},
		{Code: "2110", Name: "Equipment Loan", Type: model.AccountTypeLiability},
		{Code: "3010", Name: "Owner's Capital", Type: model.AccountTypeEquity},
		{Code: "4010", Name: "Contract Revenue", Type: model.AccountTypeIncome},
		{Code: "4020", Name: "Variation Revenue", Type: model.AccountTypeIncome},
		{Code: "5010", Name: "Materials", Type: model.AccountTypeExpense},
		{Code: "5020", Name: "Subcontractors", Type: model.AccountTypeExpense},
		{Code: "5030", Name: "Equipment Rental", Type: model.AccountTypeExpense},
		{Code: "5040", Name: "Site Wages", Type: model.AccountTypeExpense},
		{Code: "5050", Name: "Visa & Travel", Type: model.AccountTypeExpense},
		{Code: "5060", Name: "General & Admin", Type: model.AccountTypeExpense},
	}
}
