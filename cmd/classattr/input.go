package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/wippyai/jvm-classfile/classfile"
)

// decodeFunc reads one structure of the selected kind.
type decodeFunc func(*classfile.Decoder) (classfile.Node, error)

var kinds = map[string]decodeFunc{
	"attribute": func(d *classfile.Decoder) (classfile.Node, error) {
		return nonNil(d.Attribute())
	},
	"frame": func(d *classfile.Decoder) (classfile.Node, error) {
		return nonNil(d.StackMapFrame())
	},
	"verification": func(d *classfile.Decoder) (classfile.Node, error) {
		return nonNil(d.VerificationTypeInfo())
	},
	"element-value": func(d *classfile.Decoder) (classfile.Node, error) {
		return nonNil(d.ElementValue())
	},
	"pair": func(d *classfile.Decoder) (classfile.Node, error) {
		return nonNil(d.ElementValuePair())
	},
	"annotation": func(d *classfile.Decoder) (classfile.Node, error) {
		return nonNil(d.Annotation())
	},
	"parameter-annotation": func(d *classfile.Decoder) (classfile.Node, error) {
		return nonNil(d.ParameterAnnotation())
	},
	"line-number": func(d *classfile.Decoder) (classfile.Node, error) {
		return nonNil(d.LineNumber())
	},
	"parameter": func(d *classfile.Decoder) (classfile.Node, error) {
		return nonNil(d.Parameter())
	},
}

func nonNil[N classfile.Node](n N, err error) (classfile.Node, error) {
	if err != nil {
		return nil, err
	}
	return n, nil
}

func kindNames() []string {
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// knownAttributes are the names the decoder turns into typed attributes.
var knownAttributes = []string{
	classfile.AttrDeprecated,
	classfile.AttrSynthetic,
	classfile.AttrSourceFile,
	classfile.AttrStackMapTable,
	classfile.AttrLineNumberTable,
	classfile.AttrMethodParameters,
	classfile.AttrRuntimeVisibleAnnotations,
	classfile.AttrRuntimeInvisibleAnnotations,
	classfile.AttrRuntimeVisibleParameterAnnotations,
	classfile.AttrRuntimeInvisibleParameterAnnotations,
	classfile.AttrAnnotationDefault,
}

// parseNames parses "9=StackMapTable,12=Deprecated" into a name map.
func parseNames(mapping string) (map[uint16]string, error) {
	names := make(map[uint16]string)
	if strings.TrimSpace(mapping) == "" {
		return names, nil
	}
	for _, entry := range strings.Split(mapping, ",") {
		idx, name, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid name mapping %q (want index=Name)", entry)
		}
		n, err := strconv.ParseUint(idx, 0, 16)
		if err != nil || n == 0 {
			return nil, fmt.Errorf("invalid constant-pool index %q", idx)
		}
		names[uint16(n)] = name
	}
	return names, nil
}

func isKnownAttribute(name string) bool {
	for _, a := range knownAttributes {
		if a == name {
			return true
		}
	}
	return false
}

// readInput loads path ("-" for stdin). Hex input ignores whitespace and
// '#' comments.
func readInput(path string, isHex bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if !isHex {
		return data, nil
	}
	return parseHex(data)
}

func parseHex(data []byte) ([]byte, error) {
	var clean []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if i := bytes.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, r := range string(line) {
			if !unicode.IsSpace(r) {
				clean = append(clean, byte(r))
			}
		}
	}
	out := make([]byte, hex.DecodedLen(len(clean)))
	if _, err := hex.Decode(out, clean); err != nil {
		return nil, fmt.Errorf("parse hex: %w", err)
	}
	return out, nil
}

// decodeAll decodes consecutive structures until data is exhausted.
func decodeAll(data []byte, decode decodeFunc, names classfile.NameResolver) ([]classfile.Node, error) {
	dec := classfile.NewDecoder(bytes.NewReader(data), names)
	var nodes []classfile.Node
	for dec.Position() < len(data) {
		n, err := decode(dec)
		if err != nil {
			return nodes, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// checkRoundTrip re-encodes n and compares it with the bytes it came from.
func checkRoundTrip(n classfile.Node, original []byte) error {
	data, err := classfile.Encode(n)
	if err != nil {
		return err
	}
	if !bytes.Equal(data, original) {
		return fmt.Errorf("%s: re-encoded bytes differ (% x != % x)", classfile.NodeName(n), data, original)
	}
	return nil
}
