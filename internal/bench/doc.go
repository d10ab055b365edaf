// Package bench drives lists through scripted scroll and mutation runs and
// reports how much DOM-style churn each run caused.
//
// Every scenario owns its own list and viewport, so scenarios run in
// parallel while each list stays on a single goroutine.
package bench
