// Package depot implements the lot accounting and tax-base computation for
// fund and ETF holdings under the German investment tax regime.
//
// The engine is deliberately small and free of I/O:
//   - Ledger/YearLedger replay chronological buy, sell and distribution
//     records into per-acquisition lots, consuming the oldest lots first on
//     every sale.
//   - Evaluate values the surviving lots at the year boundary and derives the
//     statutory base yield ("Basisertrag") per lot, prorated by full months
//     held before acquisition.
//   - ComputeRealizedGains matches every sale of the complete history against
//     the oldest open purchase tranches and reports the gains realized in the
//     target year.
//   - Compute combines both into the final Vorabpauschale figures, applying
//     the partial exemption ("Teilfreistellung") of the instrument.
//
// Master data, transaction storage, the price database and the command line
// live in the subpackages; they feed this package plain records and market
// prices, and format what it returns.
package depot
