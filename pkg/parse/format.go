package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders the command back to shell syntax.
func (c *Command) Format() string {
	switch {
	case c.New != nil:
		return fmt.Sprintf("new %s", c.New.Object)
	case c.Show != nil:
		return fmt.Sprintf("show %s", c.Show.Name)
	case c.Call != nil:
		return fmt.Sprintf("call %s.%s(%s)", c.Call.Object, c.Call.Method, formatArgs(c.Call.Args))
	case c.Patch != nil:
		return fmt.Sprintf("patch %s %s", c.Patch.Type, c.Patch.Name)
	case c.Unpatch != nil:
		return fmt.Sprintf("unpatch %s %s", c.Unpatch.Type, c.Unpatch.Name)
	case c.Send != nil:
		return c.Send.Format()
	case c.Register != nil:
		return fmt.Sprintf("set %s register %s %s", c.Register.Set, c.Register.Type, c.Register.Name)
	case c.Activate != nil:
		return fmt.Sprintf("activate %s", c.Activate.Set)
	case c.Deactivate != nil:
		return fmt.Sprintf("deactivate %s", c.Deactivate.Set)
	case c.Wrap != nil:
		return fmt.Sprintf("wrap %s %s", c.Wrap.Set, c.Wrap.Send.Format())
	case c.ActsLike != nil:
		return fmt.Sprintf("%s acts like %s", c.ActsLike.Object, c.ActsLike.Behavior)
	default:
		return ""
	}
}

func (s *Send) Format() string {
	return fmt.Sprintf("send %s.%s(%s)", s.Receiver.Format(), s.Method, formatArgs(s.Args))
}

func (l *Literal) Format() string {
	switch {
	case l.Int != nil:
		return *l.Int
	case l.String != nil:
		return strconv.Quote(*l.String)
	case l.True:
		return "true"
	default:
		return "false"
	}
}

func formatArgs(args []*Literal) string {
	strs := make([]string, len(args))
	for idx, arg := range args {
		strs[idx] = arg.Format()
	}
	return strings.Join(strs, ", ")
}
