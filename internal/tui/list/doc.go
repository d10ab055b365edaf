// Package listview renders a dynlist over a terminal viewport as a Bubble Tea
// model.
//
// Each record is wrapped to the current width, so item heights are measured
// in terminal rows and change whenever the width changes or a row is
// expanded. Only the rows the list mounts into the viewport are wrapped and
// drawn, which keeps startup and scrolling cost independent of the record
// count.
package listview
