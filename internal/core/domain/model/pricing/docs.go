// Package pricing implements the landed-cost pricing engine for vehicle imports.
//
// The engine produces a deterministic cost breakdown for importing a vehicle
// from the US to Nigeria: vehicle price, brokerage fees, ocean shipping,
// Nigerian customs charges (duty, VAT, CISS levy), clearing and local delivery,
// plus a naira total at a configured exchange rate.
//
// All calculations are pure functions over an explicit Config value. Nothing in
// this package reads ambient state, performs I/O, or retains state between
// calls, so identical inputs always yield identical outputs.
//
// Monetary amounts are whole currency units (USD and NGN are whole-number
// display currencies in this domain); rates and multipliers are decimals to
// keep the duty/VAT/levy compounding exact.
package pricing
