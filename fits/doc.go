// Package fits writes tables as FITS table extensions.
//
// Every table becomes one HDU named by the caller, in either binary
// (BINTABLE) or ASCII (TABLE) layout:
//
//	kind           ASCII   binary
//	bool           I1      L
//	int32          I<w>    J
//	int64          I<w>    K
//	float32        E12     E
//	float64        E12     D
//	string         A<w>    <w>A
//	vector (n)     -       <n><code>
//
// Headers and data are encoded by github.com/astrogo/fitsio. Column units
// and descriptions are written as TUNITn and TDESCn keywords when set.
// Arrays cannot be written in either layout, vectors only in binary tables
// and only if every row has the same length.
//
// ReadHDUs parses the headers and raw data of a file for inspection.
package fits
