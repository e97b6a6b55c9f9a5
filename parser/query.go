package parser

import (
	"errors"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/codeview/lang"
)

// ErrQueryCompile is returned when a query does not compile against its
// grammar. It indicates broken query text, not bad user input.
var ErrQueryCompile = errors.New("query compilation failed")

// QueryKind selects one of a language's built-in queries.
type QueryKind int

const (
	// InterfaceQuery matches top-level items only.
	InterfaceQuery QueryKind = iota
	// ExpandQuery matches named items at any depth.
	ExpandQuery
)

func (k QueryKind) String() string {
	if k == ExpandQuery {
		return "expand"
	}
	return "interface"
}

// Query represents a compiled tree-sitter query.
type Query struct {
	query        *sitter.Query
	captureNames []string
}

// NewQuery compiles a tree-sitter query string.
func NewQuery(queryStr string, language lang.Language) (*Query, error) {
	spec := lang.Get(language)
	if spec == nil {
		return nil, fmt.Errorf("%w: %s not registered", ErrLanguageSetup, language)
	}

	q, err := sitter.NewQuery([]byte(queryStr), spec.Grammar())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrQueryCompile, language, err)
	}

	captureCount := int(q.CaptureCount())
	captureNames := make([]string, captureCount)
	for i := 0; i < captureCount; i++ {
		captureNames[i] = q.CaptureNameForId(uint32(i))
	}

	return &Query{
		query:        q,
		captureNames: captureNames,
	}, nil
}

type queryKey struct {
	lang lang.Language
	kind QueryKind
}

type cachedQuery struct {
	once  sync.Once
	query *Query
	err   error
}

var queryCache sync.Map // queryKey -> *cachedQuery

// Compiled returns the built-in query of the given kind for a language,
// compiling it once per process.
func Compiled(language lang.Language, kind QueryKind) (*Query, error) {
	v, _ := queryCache.LoadOrStore(queryKey{language, kind}, &cachedQuery{})
	c := v.(*cachedQuery)
	c.once.Do(func() {
		spec := lang.Get(language)
		if spec == nil {
			c.err = fmt.Errorf("%w: %s not registered", ErrLanguageSetup, language)
			return
		}
		text := spec.InterfaceQuery
		if kind == ExpandQuery {
			text = spec.ExpandQuery
		}
		c.query, c.err = NewQuery(text, language)
	})
	return c.query, c.err
}

// Match is one query match with its captures keyed by name. When a name is
// captured more than once, the first node wins.
type Match struct {
	Pattern  int
	Captures map[string]*sitter.Node
}

// Capture returns the node captured under name, or nil.
func (m Match) Capture(name string) *sitter.Node {
	return m.Captures[name]
}

// Run executes the query over the document's tree.
func (q *Query) Run(doc *Document) []Match {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(q.query, doc.Root())

	var matches []Match
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}

		m := Match{
			Pattern:  int(match.PatternIndex),
			Captures: make(map[string]*sitter.Node, len(match.Captures)),
		}
		for _, capture := range match.Captures {
			name := q.captureName(capture.Index)
			if _, seen := m.Captures[name]; !seen {
				m.Captures[name] = capture.Node
			}
		}

		matches = append(matches, m)
	}

	return matches
}

func (q *Query) captureName(index uint32) string {
	if int(index) >= len(q.captureNames) {
		return fmt.Sprintf("capture_%d", index)
	}
	return q.captureNames[index]
}
