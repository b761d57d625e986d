package parser

type CommentKind int

const (
	CommentLine CommentKind = iota
	CommentBlock
)

func (k CommentKind) String() string {
	if k == CommentBlock {
		return "block"
	}
	return "line"
}

type Comment struct {
	Kind  CommentKind
	Start Position
	End   Position
	Text  string
}

// CommentListener receives comment boundaries from the lexer. Comments
// never take part in parsing.
type CommentListener interface {
	StartComment(line, col int)
	EndComment(kind CommentKind, line, col int, text string)
}

// CommentCollector is the default CommentListener. It pairs start and end
// callbacks through a stack and keeps the comments in source order.
type CommentCollector struct {
	file     string
	open     []Position
	comments []Comment
}

func NewCommentCollector(file string) *CommentCollector {
	return &CommentCollector{file: file}
}

func (c *CommentCollector) StartComment(line, col int) {
	c.open = append(c.open, Position{File: c.file, Line: line, Column: col})
}

// EndComment closes the innermost open comment. An end without a matching
// start is dropped.
func (c *CommentCollector) EndComment(kind CommentKind, line, col int, text string) {
	n := len(c.open)
	if n == 0 {
		return
	}
	start := c.open[n-1]
	c.open = c.open[:n-1]
	c.comments = append(c.comments, Comment{
		Kind:  kind,
		Start: start,
		End:   Position{File: c.file, Line: line, Column: col},
		Text:  text,
	})
}

func (c *CommentCollector) Comments() []Comment {
	return c.comments
}
