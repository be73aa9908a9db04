package rle

import (
	"bytes"
	"strconv"
	"strings"

	yamlv3 "gopkg.in/yaml.v3"
	"sigs.k8s.io/yaml"
)

// FormatList renders serialized tokens as a bracketed, comma separated
// list of quoted strings: ["a3", "b1", "n"].
func FormatList(strs []string) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, s := range strs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Quote(s))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Listing renders the debug listing: the token list on one line followed
// by a line holding the token count.
func Listing(strs []string) string {
	return FormatList(strs) + "\n" + strconv.Itoa(len(strs)) + "\n"
}

// MarshalListYAML renders serialized tokens as a YAML sequence.
func MarshalListYAML(strs []string) ([]byte, error) {
	if strs == nil {
		strs = []string{}
	}
	return yaml.Marshal(strs)
}

// ParseListing reads serialized tokens from a bracketed list or a YAML
// sequence. A trailing line holding only a number is taken as the
// declared token count and checked.
//
// Scalars keep their literal text, so a plain "n" in a YAML sequence is
// the line break marker, not a boolean.
func ParseListing(data []byte) ([]string, error) {
	body := bytes.TrimSpace(data)
	declared := -1
	if i := bytes.LastIndexByte(body, '\n'); i >= 0 {
		last := bytes.TrimSpace(body[i+1:])
		if n, ok := parseDeclaredCount(last); ok {
			declared = n
			body = bytes.TrimSpace(body[:i])
		}
	}

	var strs []string
	if len(body) > 0 {
		if err := yamlv3.Unmarshal(body, &strs); err != nil {
			return nil, err
		}
	}
	if strs == nil {
		strs = []string{}
	}

	if declared >= 0 && declared != len(strs) {
		return nil, &CountMismatchError{Declared: declared, Got: len(strs)}
	}
	return strs, nil
}

func parseDeclaredCount(b []byte) (int, bool) {
	if len(b) == 0 {
		return 0, false
	}
	for _, c := range b {
		if !isDigit(c) {
			return 0, false
		}
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return 0, false
	}
	return n, true
}
