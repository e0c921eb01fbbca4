package glrender

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// shaderDirective starts a line that switches the active section.
const shaderDirective = "#shader"

// maxShaderLine is the longest line ParseShader accepts.
const maxShaderLine = 1 << 20

// ShaderProgramSource holds the two stage sources split from a shader file.
type ShaderProgramSource struct {
	VertexSource   string
	FragmentSource string
}

type shaderSection int

const (
	sectionNone shaderSection = iota
	sectionVertex
	sectionFragment
)

// ParseShader splits a combined shader file into vertex and fragment sources.
//
// A line containing "#shader" followed by "vertex" or "fragment" switches
// the section that subsequent lines are appended to. Directive lines are
// dropped. Lines before the first directive belong to no section and are
// discarded. Each kept line is appended with a trailing "\n"; CRLF line
// endings are normalised and a leading byte order mark is removed.
//
//	#shader vertex
//	#version 330 core
//	...
//	#shader fragment
//	#version 330 core
//	...
func ParseShader(r io.Reader) (ShaderProgramSource, error) {
	dec := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), maxShaderLine)

	var (
		vertex, fragment strings.Builder
		section          = sectionNone
		discarded        int
		lineNo           int
	)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.Contains(line, shaderDirective) {
			switch {
			case strings.Contains(line, "vertex"):
				section = sectionVertex
			case strings.Contains(line, "fragment"):
				section = sectionFragment
			default:
				Logger().Warn("unknown shader directive", "line", lineNo, "text", line)
			}
			continue
		}
		switch section {
		case sectionVertex:
			vertex.WriteString(line)
			vertex.WriteByte('\n')
		case sectionFragment:
			fragment.WriteString(line)
			fragment.WriteByte('\n')
		default:
			discarded++
		}
	}
	if err := sc.Err(); err != nil {
		return ShaderProgramSource{}, fmt.Errorf("glrender: read shader source: %w", err)
	}
	if discarded > 0 {
		Logger().Debug("discarded lines before first shader directive", "count", discarded)
	}

	return ShaderProgramSource{
		VertexSource:   vertex.String(),
		FragmentSource: fragment.String(),
	}, nil
}

// LoadShaderFile reads and splits the shader file at path.
// When the file cannot be read, the returned source is empty and the
// error wraps the filesystem error.
func LoadShaderFile(path string) (ShaderProgramSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return ShaderProgramSource{}, fmt.Errorf("glrender: open shader %s: %w", path, err)
	}
	defer f.Close()

	src, err := ParseShader(f)
	if err != nil {
		return ShaderProgramSource{}, fmt.Errorf("%w (%s)", err, path)
	}
	return src, nil
}
