/*
Package payroll implements the treasury disbursement engine.

A Treasury guards custody of an organization's payroll funds. Anyone can
deposit into it, only the current admin can move funds out, and a batch
disbursement pays every recipient or none of them. All balances live on the
fungible ledger collaborator; the engine derives its view of the custody
balance from the ledger on every call and never caches it.

Across any sequence of operations the custody balance equals the sum of all
completed deposits minus all completed disbursement totals minus all
completed withdrawals.
*/
package payroll
