// Package models defines the typed records SplitStuff stores and loads.
//
// Records are built at the data-access boundary (storage package) and handed
// to the service layer, which converts them into ledger inputs. Relationships
// use ID strings instead of pointers.
//
//   - Profile: a person known to the platform (the JWT subject is the profile ID)
//   - Group / Member: a named set of profiles sharing expenses
//   - Expense / ExpenseSplit: a payment and each member's share of it
//   - Settlement: a recorded repayment, pending or settled
package models
