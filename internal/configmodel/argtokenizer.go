package configmodel

import (
	"fmt"
	"strings"

	"github.com/C2SM/ethiopia/internal/graph"
)

// TokenizeCLIArguments splits a `cli_arguments` template into literal,
// positional-data-reference, and option-data-reference tokens (spec.md
// §4.5, SPEC_FULL §4.9): a `{` opens a data-reference group, `}` closes it;
// an element fully enclosed in braces is either `{name}` (positional) or
// `{option name}` (option + value); everything else is a literal argument.
//
// google/shlex (the teacher's CLI-argument-splitting dependency, used
// elsewhere in the pack for plain POSIX-quoted tokenizing) doesn't model
// this brace-grouping grammar, so this is a bespoke scanner rather than a
// wrapper around it — see DESIGN.md.
func TokenizeCLIArguments(template string) ([]graph.ArgToken, error) {
	var tokens []graph.ArgToken
	depth := 0
	var cur strings.Builder
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		text := cur.String()
		cur.Reset()
		for _, word := range strings.Fields(text) {
			tokens = append(tokens, graph.ArgToken{Kind: graph.ArgLiteral, Literal: word})
		}
	}
	var group strings.Builder
	for _, r := range template {
		switch r {
		case '{':
			if depth == 0 {
				flush()
				group.Reset()
			} else {
				group.WriteRune(r)
			}
			depth++
		case '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("configmodel: unbalanced '}' in cli_arguments %q", template)
			}
			if depth == 0 {
				tok, err := parseGroup(group.String())
				if err != nil {
					return nil, err
				}
				tokens = append(tokens, tok)
				group.Reset()
			} else {
				group.WriteRune(r)
			}
		default:
			if depth > 0 {
				group.WriteRune(r)
			} else {
				cur.WriteRune(r)
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("configmodel: unbalanced '{' in cli_arguments %q", template)
	}
	flush()
	return tokens, nil
}

func parseGroup(body string) (graph.ArgToken, error) {
	fields := strings.Fields(body)
	switch len(fields) {
	case 1:
		return graph.ArgToken{Kind: graph.ArgPositional, DataName: fields[0]}, nil
	case 2:
		if fields[0] != "option" {
			return graph.ArgToken{}, fmt.Errorf("configmodel: data reference group %q must be '{name}' or '{option name}'", body)
		}
		return graph.ArgToken{Kind: graph.ArgOption, OptionTag: "--" + fields[1], DataName: fields[1]}, nil
	default:
		return graph.ArgToken{}, fmt.Errorf("configmodel: malformed data reference group %q", body)
	}
}
