// Package pipes provides ready made transformations over frames: column
// selection, change and returns, period aggregation, rolling windows,
// rebasing and index joins. Every constructor returns a disconnected node
// carrying its own input validators.
package pipes
