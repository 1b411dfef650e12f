// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package bytesparse

// HeaderItem consumes until the next space, then the space itself. It
// returns ("", true, rest, nil) if the content is exactly "-" (the SYSLOG
// NIL), otherwise the token is returned with isNil=false. The
// error message embeds name so decoder-level failures are traceable to the
// field that produced them.
func HeaderItem(s []byte, name string) (value string, isNil bool, rest []byte, err error) {
	content, rest, err := Until(s, ' ')
	if err != nil {
		return "", false, s, newError(KindMissingField, "missing %s", name)
	}
	rest = rest[1:] // consume the space
	if string(content) == "-" {
		return "", true, rest, nil
	}
	return string(content), false, rest, nil
}
