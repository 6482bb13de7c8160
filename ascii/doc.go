// Package ascii reads and writes tables as whitespace-separated text.
//
// A file starts with an optional comment block. Lines of the form
//
//	# Column: <name> [<type>] [(<unit>)] [-] [description]
//
// declare one column each, and the last plain comment line before the data
// may list the column names:
//
//	# Column: id long - Object identifier
//	# Column: flux double (mJy)
//	#
//	#  id   flux
//	    1    0.5
//	    2   1.25
//
// Type keywords are bool, int, long, float, double and string, a keyword in
// brackets ("[double]") for a comma-separated vector and with a plus
// ("[int+]") for an N-dimensional array written as "<2,2>1,2,3,4".
// Undeclared columns are strings; unnamed columns are called col1, col2, ...
//
// A Reader detects the layout lazily and can stream the rows in chunks:
//
//	r := ascii.NewReader(f)
//	for {
//	    more, err := r.HasMoreRows()
//	    if err != nil || !more {
//	        break
//	    }
//	    chunk, err := r.Read(1000)
//	    ...
//	}
package ascii
