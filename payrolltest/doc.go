/*
Package payrolltest provides test doubles for the treasury engine: an
in-memory fungible ledger with failure injection, a fact recorder and
deterministic address and linkage identifier generators.
*/
package payrolltest
