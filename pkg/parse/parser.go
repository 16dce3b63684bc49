package parse

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle"
	"github.com/alecthomas/participle/lexer"
	"github.com/vilterp/mixins/pkg/object"
)

var (
	shellLexer = lexer.Must(
		lexer.Regexp(`(\s+)` +
			`|(?P<Ident>[a-zA-Z_][a-zA-Z0-9_]*)` +
			`|(?P<Int>[-+]?\d+)` +
			`|(?P<String>"(?:\\.|[^"])*")` +
			`|(?P<Punct>[.,()])`,
		),
	)
	shellParser = participle.MustBuild(
		&Command{},
		participle.Lexer(shellLexer),
		participle.Unquote("String"),
	)
)

// Command is one line of the mixin shell. Keyword-led forms come first;
// `<obj> acts like <Behavior>` is tried last.
type Command struct {
	New        *New        `  @@`
	Show       *Show       `| @@`
	Call       *Call       `| @@`
	Patch      *Patch      `| @@`
	Unpatch    *Unpatch    `| @@`
	Send       *Send       `| @@`
	Register   *Register   `| @@`
	Activate   *Activate   `| @@`
	Deactivate *Deactivate `| @@`
	Wrap       *Wrap       `| @@`
	ActsLike   *ActsLike   `| @@`
}

type New struct {
	Object string `"new" @Ident`
}

type Show struct {
	Name string `"show" @Ident`
}

type Call struct {
	Object string     `"call" @Ident`
	Method string     `"." @Ident`
	Args   []*Literal `"(" [ @@ { "," @@ } ] ")"`
}

type Patch struct {
	Type string `"patch" @Ident`
	Name string `@Ident`
}

type Unpatch struct {
	Type string `"unpatch" @Ident`
	Name string `@Ident`
}

type Send struct {
	Receiver *Literal   `"send" @@`
	Method   string     `"." @Ident`
	Args     []*Literal `"(" [ @@ { "," @@ } ] ")"`
}

type Register struct {
	Set  string `"set" @Ident "register"`
	Type string `@Ident`
	Name string `@Ident`
}

type Activate struct {
	Set string `"activate" @Ident`
}

type Deactivate struct {
	Set string `"deactivate" @Ident`
}

type Wrap struct {
	Set  string `"wrap" @Ident`
	Send *Send  `@@`
}

type ActsLike struct {
	Object   string `@Ident "acts" "like"`
	Behavior string `@Ident`
}

type Literal struct {
	Int    *string `  @Int`
	String *string `| @String`
	True   bool    `| @"true"`
	False  bool    `| @"false"`
}

// Value converts the literal to an object value.
func (l *Literal) Value() (object.Value, error) {
	switch {
	case l.Int != nil:
		i, err := strconv.Atoi(*l.Int)
		if err != nil {
			return nil, err
		}
		return object.NewVInt(i), nil
	case l.String != nil:
		return object.NewVString(*l.String), nil
	case l.True:
		return object.NewVBool(true), nil
	default:
		return object.NewVBool(false), nil
	}
}

// Values converts a literal list, stopping at the first bad one.
func Values(lits []*Literal) ([]object.Value, error) {
	out := make([]object.Value, len(lits))
	for idx, lit := range lits {
		val, err := lit.Value()
		if err != nil {
			return nil, err
		}
		out[idx] = val
	}
	return out, nil
}

// Keywords that start a command. An object named after one could never be
// the subject of `acts like`, so `new` refuses them.
var Keywords = map[string]bool{
	"new":        true,
	"show":       true,
	"call":       true,
	"patch":      true,
	"unpatch":    true,
	"send":       true,
	"set":        true,
	"activate":   true,
	"deactivate": true,
	"wrap":       true,
}

// Parse parses one shell command.
func Parse(line string) (*Command, error) {
	cmd := &Command{}
	if err := shellParser.ParseString(line, cmd); err != nil {
		return cmd, err
	}
	if cmd.New != nil && Keywords[cmd.New.Object] {
		return cmd, fmt.Errorf("can't name an object %q: it starts a command", cmd.New.Object)
	}
	return cmd, nil
}
