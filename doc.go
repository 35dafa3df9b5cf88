/*
Package treasury provides the shared types of the treasury disbursement
engine: account addresses, the fungible ledger collaborator interface and
the audit facts the engine emits.

The engine itself lives in x/payroll. It guards custody of an
organization's payroll funds and pays many recipients in one atomic
operation. All token balances are owned by an external fungible ledger;
this module never keeps a parallel balance that could drift.
*/
package treasury
