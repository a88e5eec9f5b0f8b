package helper

import (
	"fmt"
	"io"
)

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `Usage:
  hnsync COMMAND [OPTIONS]

Commands:
   sync            run one fetch-and-persist cycle and exit
   fetch           start background syncing with a control server
   serve           serve the read-only newsfeed API
   list            list stored stories, newest first [--num N]
   delete          delete a stored story and its votes (--id N)
   status          show the background process status
   set-interval    set sync interval (--duration 2m)
   set-workers     set number of fetch workers (--count N)
   help            show this help
`)
}
