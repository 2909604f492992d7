package infra

import (
	"fmt"
	"io"
	"path"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// References:
// https://github.com/pkg/errors/blob/master/stack.go
// https://github.com/pkg/errors/blob/master/errors.go
// https://pkg.go.dev/go.uber.org/zap/zapcore#ObjectMarshaler

type Frame uintptr

func (frame Frame) pc() uintptr {
	return uintptr(frame) - 1
}

// resolve loads the function metadata lazily. A zero or garbage
// program counter degrades to the unknown placeholders instead of
// panicking inside the runtime.
func (frame Frame) resolve() (name, file string, line int) {
	fn := runtime.FuncForPC(frame.pc())
	if fn == nil {
		return "unknownFunc", "unknownFile", 0
	}
	file, line = fn.FileLine(frame.pc())
	return fn.Name(), file, line
}

// Format characters:
// %s - source file
// %d - source line
// %n - function name
// %v - verbose, equivalent to %s:%d
// %+s - full path, the root path is relative to the compile time GOPATH
// separated by \n\t (<function-name>\n\t<path>)
// %+v - equivalent to %+s:%d
func (frame Frame) Format(s fmt.State, verb rune) {
	name, file, line := frame.resolve()
	switch verb {
	case 's':
		if s.Flag('+') {
			_, _ = io.WriteString(s, name)
			_, _ = io.WriteString(s, "\n\t")
			_, _ = io.WriteString(s, file)
		} else {
			_, _ = io.WriteString(s, path.Base(file))
		}
	case 'd':
		_, _ = io.WriteString(s, strconv.Itoa(line))
	case 'n':
		_, _ = io.WriteString(s, shortFuncName(name))
	case 'v':
		frame.Format(s, 's')
		_, _ = io.WriteString(s, ":")
		frame.Format(s, 'd')
	}
}

// For fmt.Sprintf("%+v", frame).
// If json.Marshaler interface isn't implemented, the MarshalText method is used.
func (frame Frame) MarshalText() ([]byte, error) {
	name, file, line := frame.resolve()
	if name == "unknownFunc" {
		return []byte("unknownFrame"), nil
	}
	builder := strings.Builder{}
	_, _ = builder.WriteString(name)
	_, _ = builder.WriteString(" ")
	_, _ = builder.WriteString(file)
	_, _ = builder.WriteString(":")
	_, _ = builder.WriteString(strconv.Itoa(line))
	return []byte(builder.String()), nil
}

func (frame Frame) MarshalJSON() ([]byte, error) {
	name, file, line := frame.resolve()
	if name == "unknownFunc" {
		return []byte("{\"frame\":\"unknownFrame\"}"), nil
	}
	builder := strings.Builder{}
	_, _ = builder.WriteString("{\"func\":\"")
	_, _ = builder.WriteString(name)
	_, _ = builder.WriteString("\",\"fileAndLine\":\"")
	_, _ = builder.WriteString(file)
	_, _ = builder.WriteString(":")
	_, _ = builder.WriteString(strconv.Itoa(line))
	_, _ = builder.WriteString("\"}")
	return []byte(builder.String()), nil
}

func shortFuncName(name string) string {
	i := strings.LastIndex(name, "/")
	name = name[i+1:]
	i = strings.Index(name, ".")
	return name[i+1:]
}

// ErrorStack is the error contract of this module. Every error built by
// the constructors below carries the program counters of its birth place,
// unwraps to its cause for errors.Is and errors.As, and renders itself as
// a zap inline object (zap.Inline) without any fmt round-trip.
type ErrorStack interface {
	error
	zapcore.ObjectMarshaler
	Unwrap() error
	Frames() []Frame
}

const maxStackDepth = 32

type errorStack struct {
	cause  error
	msg    string
	frames []Frame
}

var (
	_ ErrorStack              = (*errorStack)(nil)
	_ fmt.Formatter           = (*errorStack)(nil)
	_ zapcore.ObjectMarshaler = (*errorStack)(nil)
)

// callers must be invoked directly by a constructor so the skip count
// lands on the constructor's caller.
func callers() []Frame {
	var pcs [maxStackDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := make([]Frame, 0, n)
	for _, pc := range pcs[:n] {
		frames = append(frames, Frame(pc))
	}
	return frames
}

// NewErrorStack creates a brand-new error with the current call stack.
func NewErrorStack(msg string) error {
	return &errorStack{
		msg:    msg,
		frames: callers(),
	}
}

// WrapErrorStack attaches the current call stack to err. A nil err stays
// nil. An err that already carries a stack is returned untouched so the
// original birth place is kept.
func WrapErrorStack(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*errorStack); ok {
		return err
	}
	return &errorStack{
		cause:  err,
		frames: callers(),
	}
}

// WrapErrorStackWithMessage wraps err with an additional context message
// and the current call stack. A nil err stays nil. The cause remains
// visible to errors.Is and errors.As through Unwrap.
func WrapErrorStackWithMessage(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &errorStack{
		cause:  err,
		msg:    msg,
		frames: callers(),
	}
}

func (es *errorStack) Error() string {
	switch {
	case es.msg != "" && es.cause != nil:
		return es.msg + ": " + es.cause.Error()
	case es.cause != nil:
		return es.cause.Error()
	}
	return es.msg
}

func (es *errorStack) Unwrap() error { return es.cause }

func (es *errorStack) Frames() []Frame { return es.frames }

// Format renders %s as the plain message and %+v as the message followed
// by one "<func>\n\t<file>:<line>" block per frame.
func (es *errorStack) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		_, _ = io.WriteString(s, es.Error())
		if s.Flag('+') {
			for _, frame := range es.frames {
				_, _ = io.WriteString(s, "\n")
				frame.Format(s, 'v')
			}
		}
	case 's':
		_, _ = io.WriteString(s, es.Error())
	}
}

// MarshalLogObject lets zap.Inline(err) expand the error in place.
func (es *errorStack) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("error", es.Error())
	if es.cause != nil && es.msg != "" {
		enc.AddString("cause", es.cause.Error())
	}
	return enc.AddArray("frames", zapcore.ArrayMarshalerFunc(func(ae zapcore.ArrayEncoder) error {
		for _, frame := range es.frames {
			txt, err := frame.MarshalText()
			if err != nil {
				return err
			}
			ae.AppendString(string(txt))
		}
		return nil
	}))
}
