package employee

import "github.com/shopspring/decimal"

// Employee is a read-only fact from the directory: the ledger consults it for
// basic pay and existence checks but never writes it.
type Employee struct {
	ID         string
	Name       string
	Department string
	ManagerID  *string
	BasicPay   decimal.Decimal
}
