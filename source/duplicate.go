package source

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/reoring/fluentcheck"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	key          string // current key (objects)
	index        int    // next element index (arrays)
}

// DuplicateKeys reports object keys that occur more than once in a JSON
// document. Decoding into a map keeps only the last value, so this has to walk
// the token stream. Malformed input yields a single parse_error issue.
func DuplicateKeys(data []byte) fluentcheck.Issues {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var issues fluentcheck.Issues
	var stack []frame

	// valueDone marks the end of a value inside the current container.
	valueDone := func() {
		if len(stack) == 0 {
			return
		}
		top := &stack[len(stack)-1]
		switch top.kind {
		case kindObject:
			top.expectingKey = true
		case kindArray:
			top.index++
		}
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) && len(stack) > 0 {
			err = io.ErrUnexpectedEOF
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			issues = append(issues, fluentcheck.Issue{Path: pointer(stack), Code: fluentcheck.CodeParseError, Message: err.Error()})
			break
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, frame{kind: kindObject, keys: map[string]struct{}{}, expectingKey: true})
			case '[':
				stack = append(stack, frame{kind: kindArray})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].kind == kindObject && stack[n-1].expectingKey {
				top := &stack[n-1]
				top.key = v
				top.expectingKey = false
				if _, ok := top.keys[v]; ok {
					issues = append(issues, fluentcheck.Issue{
						Path:    pointer(stack),
						Code:    fluentcheck.CodeDuplicateKey,
						Message: "key '" + v + "' duplicated",
					})
				}
				top.keys[v] = struct{}{}
				continue
			}
			valueDone()
		default:
			valueDone()
		}
	}
	return issues
}

// pointer renders the JSON Pointer of the current position.
func pointer(stack []frame) string {
	if len(stack) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, f := range stack {
		b.WriteByte('/')
		switch f.kind {
		case kindObject:
			b.WriteString(escapeToken(f.key))
		case kindArray:
			b.WriteString(strconv.Itoa(f.index))
		}
	}
	return b.String()
}

func escapeToken(s string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(s)
}
