package model

import "strings"

// NewLine is the line terminator used by every emitter
const NewLine = "\n"

// Builder accumulates output text
type Builder struct {
	sb strings.Builder
}

// Write appends content as-is
func (b *Builder) Write(content string) {
	b.sb.WriteString(content)
}

// Writef appends each part in order
func (b *Builder) Writef(parts ...string) {
	for _, p := range parts {
		b.sb.WriteString(p)
	}
}

// WriteLine appends content (when non-empty) followed by a line break
func (b *Builder) WriteLine(content string) {
	if content != "" {
		b.sb.WriteString(content)
	}
	b.sb.WriteString(NewLine)
}

// Len returns the number of bytes written so far
func (b *Builder) Len() int {
	return b.sb.Len()
}

func (b *Builder) String() string {
	return b.sb.String()
}

// Indent returns the indentation for a nesting level (4 spaces per level)
func Indent(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(" ", level*4)
}
