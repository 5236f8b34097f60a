package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sitebook-dev/sitebook/internal/model"
	"github.com/sitebook-dev/sitebook/internal/posting"
)

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return d, nil
}

// parseDateOrToday treats an empty flag as today.
func parseDateOrToday(s string) (time.Time, error) {
	if s == "" {
		return today(), nil
	}
	return parseDate(s)
}

// parseDateOrZero treats an empty flag as "no filter".
func parseDateOrZero(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return parseDate(s)
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// parseLine parses one journal line in CODE:SIDE:AMOUNT form, e.g.
// "5010:D:1500.00". project and desc apply to every line of the
// transaction.
func parseLine(s, project, desc string) (posting.Line, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return posting.Line{}, fmt.Errorf("invalid line %q (want CODE:D|C:AMOUNT)", s)
	}

	var side model.Side
	switch strings.ToUpper(parts[1]) {
	case "D", "DR", "DEBIT":
		side = model.SideDebit
	case "C", "CR", "CREDIT":
		side = model.SideCredit
	default:
		return posting.Line{}, fmt.Errorf("invalid side %q in line %q (want D or C)", parts[1], s)
	}

	amount, err := parseAmount(parts[2])
	if err != nil {
		return posting.Line{}, err
	}

	return posting.Line{
		AccountCode: parts[0],
		Side:        side,
		Amount:      amount,
		Description: desc,
		ProjectCode: project,
	}, nil
}
