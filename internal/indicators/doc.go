// Package indicators implements the technical series used by the vote classifiers.
//
// Every function takes and returns plain []float64 of equal length. NaN marks an
// undefined value; functions never fail, they propagate NaN instead.
package indicators
