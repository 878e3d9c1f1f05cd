package shell

import "io"

const helpText = `tessera commands:

  load <piecefile>       load a puzzle definition (one piece per line:
                         top right bottom left)
  gen <r> <c> <f> <i> [file]
                         generate a solvable r x c puzzle with f frame
                         and i inner colors; optionally write it out
  show                   display the current board and score
  solve [all]            exact search for a perfect arrangement;
                         "all" keeps searching and counts every solution
  heur                   heuristic two-phase search for the best score
  stop                   interrupt a running solve (best board is kept)
  target <score>         set the score the heuristic search must reach
  seed <n>               set the random seed
  saveboard <file>       write the current arrangement to a file
  loadboard <file>       restore an arrangement (pins its filled cells)
  config                 print the active configuration
  stats                  score statistics for recorded runs of this puzzle
  help                   this text
  exit                   quit
`

func usage(w io.Writer) {
	showMessage(helpText, w)
}
