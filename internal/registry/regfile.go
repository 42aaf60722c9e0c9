package registry

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	regHeaderV5 = "Windows Registry Editor Version 5.00"
	regHeaderV4 = "REGEDIT4"
)

// bamRoots are the UserSettings keys BAM has used across Windows 10 builds,
// in canonical form. They are matched as suffixes so hives mounted under a
// custom name (`reg load HKLM\OFFLINE ...`) are found too.
var bamRoots = []string{
	`CONTROLSET\SERVICES\BAM\STATE\USERSETTINGS`,
	`CONTROLSET\SERVICES\BAM\USERSETTINGS`,
}

// Key is one section of a .reg export.
type Key struct {
	Path   string
	Values []Value
}

// RegFileSource reads subkeys from a `reg export` text file.
// Root names the key whose children are returned; when empty the BAM
// UserSettings key is located automatically.
type RegFileSource struct {
	Path string
	Root string
}

func NewRegFileSource(path, root string) *RegFileSource {
	return &RegFileSource{Path: path, Root: root}
}

func (s *RegFileSource) Subkeys(ctx context.Context) ([]Subkey, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reg export: %w", err)
	}
	keys, err := ParseRegExport(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.Path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ChildrenOf(keys, s.Root)
}

// ChildrenOf returns the direct children of root among keys, in file order.
// An empty root selects the first BAM UserSettings key found.
func ChildrenOf(keys []Key, root string) ([]Subkey, error) {
	want := CanonicalKey(root)
	if root == "" {
		want = findBamRoot(keys)
		if want == "" {
			return nil, fmt.Errorf("no bam UserSettings key in export: %w", ErrKeyNotFound)
		}
	}

	// Exports of a whole SYSTEM hive carry several control sets that fold to
	// the same canonical key; only the first one seen is used.
	var actual string
	subkeys := make([]Subkey, 0)
	for _, k := range keys {
		upper := strings.ToUpper(k.Path)
		canon := CanonicalKey(k.Path)
		switch {
		case canon == want:
			if actual == "" {
				actual = upper
			}
		case parentKey(canon) == want:
			if actual == "" {
				actual = parentKey(upper)
			}
			if parentKey(upper) == actual {
				subkeys = append(subkeys, Subkey{Name: baseName(k.Path), Values: k.Values})
			}
		}
	}
	if actual == "" {
		return nil, fmt.Errorf("%s: %w", root, ErrKeyNotFound)
	}
	return subkeys, nil
}

func findBamRoot(keys []Key) string {
	for _, k := range keys {
		canon := CanonicalKey(k.Path)
		for _, r := range bamRoots {
			if hasKeySuffix(canon, r) {
				return canon
			}
			if parent := parentKey(canon); hasKeySuffix(parent, r) {
				return parent
			}
		}
	}
	return ""
}

func hasKeySuffix(path, suffix string) bool {
	return path == suffix || strings.HasSuffix(path, `\`+suffix)
}

// ParseRegExport parses .reg text (UTF-16LE with BOM as written by
// `reg export`, or UTF-8) into keys in file order. A key that appears in
// several sections is merged into its first occurrence.
func ParseRegExport(data []byte) ([]Key, error) {
	text, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode reg text: %w", err)
	}

	var (
		keys       []Key
		index      = make(map[string]int)
		current    = -1
		skipping   bool
		seenHeader bool
		lineNo     int
		pending    strings.Builder
	)

	scanner := bufio.NewScanner(bytes.NewReader(text))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lineNo++
		trim := strings.TrimSpace(scanner.Text())

		// hex payloads wrap onto following lines with a trailing backslash
		if pending.Len() > 0 {
			pending.WriteString(strings.TrimSuffix(trim, `\`))
			if strings.HasSuffix(trim, `\`) {
				continue
			}
			trim = pending.String()
			pending.Reset()
		} else if isWrappedHex(trim) {
			pending.WriteString(strings.TrimSuffix(trim, `\`))
			continue
		}

		if trim == "" || strings.HasPrefix(trim, ";") {
			continue
		}
		if !seenHeader {
			if trim != regHeaderV5 && trim != regHeaderV4 {
				return nil, fmt.Errorf("line %d: missing .reg header", lineNo)
			}
			seenHeader = true
			continue
		}

		if strings.HasPrefix(trim, "[") {
			if !strings.HasSuffix(trim, "]") {
				return nil, fmt.Errorf("line %d: malformed section %q", lineNo, trim)
			}
			section := trim[1 : len(trim)-1]
			if strings.HasPrefix(section, "-") {
				skipping = true
				current = -1
				continue
			}
			skipping = false
			upper := strings.ToUpper(section)
			if i, ok := index[upper]; ok {
				current = i
				continue
			}
			keys = append(keys, Key{Path: section})
			current = len(keys) - 1
			index[upper] = current
			continue
		}

		if skipping {
			continue
		}
		if current < 0 {
			return nil, fmt.Errorf("line %d: value outside of a section", lineNo)
		}
		v, ok, err := parseValueLine(trim)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if ok {
			keys[current].Values = append(keys[current].Values, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if pending.Len() > 0 {
		return nil, fmt.Errorf("line %d: truncated hex value", lineNo)
	}
	if !seenHeader {
		return nil, fmt.Errorf("missing .reg header")
	}
	return keys, nil
}

func isWrappedHex(line string) bool {
	if !strings.HasPrefix(line, `"`) && !strings.HasPrefix(line, "@") {
		return false
	}
	return strings.HasSuffix(line, `\`) && strings.Contains(line, "=hex")
}

// parseValueLine parses `"name"=payload` or `@=payload`. Deletions
// (`"name"=-`) report ok=false.
func parseValueLine(line string) (Value, bool, error) {
	var name, payload string
	switch {
	case strings.HasPrefix(line, "@="):
		payload = line[2:]
	case strings.HasPrefix(line, `"`):
		end := closingQuote(line)
		if end < 0 {
			return Value{}, false, fmt.Errorf("unterminated value name in %q", line)
		}
		name = unescape(line[1:end])
		rest := line[end+1:]
		if !strings.HasPrefix(rest, "=") {
			return Value{}, false, fmt.Errorf("missing '=' in %q", line)
		}
		payload = rest[1:]
	default:
		return Value{}, false, fmt.Errorf("malformed value line %q", line)
	}

	payload = strings.TrimSpace(payload)
	switch {
	case payload == "-":
		return Value{}, false, nil
	case strings.HasPrefix(payload, `"`):
		if len(payload) < 2 || !strings.HasSuffix(payload, `"`) {
			return Value{}, false, fmt.Errorf("unterminated string %q", payload)
		}
		data, err := encodeUTF16Z(unescape(payload[1 : len(payload)-1]))
		if err != nil {
			return Value{}, false, err
		}
		return Value{Name: name, Data: data, Kind: String}, true, nil
	case strings.HasPrefix(payload, "dword:"):
		n, err := strconv.ParseUint(payload[len("dword:"):], 16, 32)
		if err != nil {
			return Value{}, false, fmt.Errorf("invalid dword %q: %w", payload, err)
		}
		data := make([]byte, 4)
		binary.LittleEndian.PutUint32(data, uint32(n))
		return Value{Name: name, Data: data, Kind: DWord}, true, nil
	case strings.HasPrefix(payload, "hex"):
		kind, data, err := parseHexPayload(payload)
		if err != nil {
			return Value{}, false, err
		}
		return Value{Name: name, Data: data, Kind: kind}, true, nil
	}
	return Value{}, false, fmt.Errorf("unsupported value %q", payload)
}

// parseHexPayload handles `hex:aa,bb` (binary) and `hex(N):aa,bb` where N
// is the value kind in hex.
func parseHexPayload(payload string) (ValueKind, []byte, error) {
	kind := Binary
	head, body, ok := strings.Cut(payload, ":")
	if !ok {
		return 0, nil, fmt.Errorf("invalid hex data %q", payload)
	}
	if head != "hex" {
		inner, found := strings.CutPrefix(head, "hex(")
		inner, closed := strings.CutSuffix(inner, ")")
		if !found || !closed {
			return 0, nil, fmt.Errorf("invalid hex type %q", head)
		}
		n, err := strconv.ParseUint(inner, 16, 32)
		if err != nil {
			return 0, nil, fmt.Errorf("invalid hex type %q: %w", head, err)
		}
		kind = ValueKind(n)
	}

	data := make([]byte, 0, len(body)/3+1)
	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), `\`))
		if part == "" {
			continue
		}
		if len(part) == 1 {
			part = "0" + part
		}
		b, err := hex.DecodeString(part)
		if err != nil || len(b) != 1 {
			return 0, nil, fmt.Errorf("invalid hex byte %q", part)
		}
		data = append(data, b[0])
	}
	return kind, data, nil
}

// closingQuote finds the quote ending a name that starts at index 0,
// skipping quotes escaped by an odd run of backslashes.
func closingQuote(line string) int {
	for i := 1; i < len(line); i++ {
		if line[i] != '"' {
			continue
		}
		n := 0
		for j := i - 1; j >= 1 && line[j] == '\\'; j-- {
			n++
		}
		if n%2 == 0 {
			return i
		}
	}
	return -1
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '"') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func encodeUTF16Z(s string) ([]byte, error) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	out, _, err := transform.Bytes(enc, []byte(s+"\x00"))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %q: %w", s, err)
	}
	return out, nil
}
