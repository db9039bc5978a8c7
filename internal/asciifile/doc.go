// Package asciifile provides the latan ASCII container: a human-readable,
// tag-delimited text file holding matrices, matrix samples and generator
// states, addressed by name.
//
// The container is line oriented:
//
//	Matrix:
//	  #L latan_begin mat <name>
//	  <columns>
//	  <row 0 values, scientific notation>
//	  ...
//	  #L latan_end mat
//
//	Sample of size N:
//	  #L latan_begin rs_sample <name>
//	  <N>
//	  <mat block named <name>_C>
//	  <mat block named <name>_S_0>
//	  ...
//	  <mat block named <name>_S_N-1>
//	  #L latan_end rs_sample
//
//	Generator state:
//	  #L latan_begin rg_state <name>
//	  <hexadecimal state>
//	  #L latan_end rg_state
//
// Lines starting with "#" but not "#L" are comments; blank lines are ignored.
// The matrix blocks of a sample are siblings between its begin and end
// markers; the reader folds them into one sample using their names.
//
// A File is written by appending blocks and read by parsing the whole file on
// first access:
//
//	f, err := asciifile.Open("out.dat", asciifile.ModeWrite)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := f.SaveMatrix(m, "corr"); err != nil {
//	    log.Fatal(err)
//	}
//	f.Close()
//
//	f, err = asciifile.Open("out.dat", asciifile.ModeRead)
//	...
//	m, err := f.ReadMatrix("corr")
package asciifile
