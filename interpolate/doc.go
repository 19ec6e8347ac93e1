/*
Package interpolate substitutes “{{key}}” placeholders in arbitrary text with
values from a set of parameters, optionally piping the values through named
formatters first.

A placeholder consists of the key of a parameter and optionally a list of
formatter names, separated by “|”:

	{{name}}
	{{ user.name | trim | upper }}

Keys and formatter names are trimmed; formatter names are case-insensitive.
Keys are dot paths into (nested) parameters, so “user.name” looks up “name”
inside the “user” mapping. Sequence elements are addressed by their index,
such as “users.0.name” or “users[0].name”. A key that literally contains dots
takes precedence over a dot path with the same spelling.

Placeholders never span lines and never nest: the body of a placeholder must
not contain any of the characters of the opening and closing delimiters. This
way, “{{{foo}}}” interpolates the inner “{{foo}}”, leaving the outer braces as
they are.

# Recursive Interpolation

When the value of a parameter contains placeholders itself, these get
interpolated before the value is formatted and substituted. Parameters thus
can be built from other parameters:

	greeting: "Hello, {{name}}!"
	name:     "World"

A parameter that (directly or indirectly) refers back to itself can't be
resolved and is treated like a missing parameter; the same applies when
recursion exceeds the maximum depth (see [WithMaxDepth]).

# Formatters

Formatters get applied from left to right, each one getting the output of its
predecessor. Formatters are looked up in a [format.Registry]; please see
package format for the list of built-in formatters. Line-aware formatters,
such as “padleft”, get the position of the placeholder in its line so that
multi-line values can be correctly indented:

	spec:
	  script: {{script|padleft}}

If a formatter is unknown or fails, the unformatted value gets substituted and
the failure is reported in the same way as missing parameters are reported
(see below).

# Missing Parameters

How missing parameters are handled is controlled by two independent settings.
First, whether missing parameters are silently ignored, reported as warnings
(the default), or whether interpolation fails ([WithReport]). Second, what
gets substituted in place of a missing parameter: either the original
placeholder text (the default) or a default value ([WithSubstitute],
[WithDefault]).

# Parameters

Parameters can be given as structured data, as JSON text, or as a list of
comma-separated “key=value” pairs, see [ParseParams]. Parameter files in JSON,
YAML, and dotenv format can be loaded using [LoadParamsFile]. Optionally, the
process environment variables serve as fallback parameters ([WithEnvironment]).
*/
package interpolate
