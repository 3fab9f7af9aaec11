package parser

import (
	"fmt"
	"io"

	"github.com/nedanwr/kronos/errors"
)

func recursionMessage(limit int) string {
	return fmt.Sprintf("Maximum recursion depth (%d) exceeded", limit)
}

func fprintError(w io.Writer, err *errors.Error) {
	fmt.Fprintln(w, err.Error())
}
