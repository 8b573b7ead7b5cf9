// Package spectrum turns FFT output into magnitudes and locates spectral
// peaks with sub-bin precision.
package spectrum
