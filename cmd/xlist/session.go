package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benz9527/xlist/lib/infra"
	"github.com/benz9527/xlist/lib/list"
	"github.com/benz9527/xlist/lib/xlog"
)

var (
	errUnknownKind    = errors.New("[xlist] unknown list kind")
	errUnknownCommand = errors.New("[xlist] unknown command")
	errBadArguments   = errors.New("[xlist] bad arguments")
	errBadCapacity    = errors.New("[xlist] bad capacity")
)

const (
	kindArray  = "array"
	kindLinked = "linked"
)

func newList(kind string, capacity int64) (list.List[int64], error) {
	if capacity < 0 || capacity > list.MaxInitialCapacity {
		return nil, infra.WrapErrorStackWithMessage(errBadCapacity,
			fmt.Sprintf("%d not in [0, %d]", capacity, list.MaxInitialCapacity))
	}
	switch kind {
	case kindArray:
		return list.NewArrayList[int64](list.WithInitialCapacity(capacity)), nil
	case kindLinked:
		return list.NewLinkedList[int64](list.WithInitialCapacity(capacity)), nil
	default:
	}
	return nil, infra.WrapErrorStackWithMessage(errUnknownKind, strconv.Quote(kind))
}

// commandArity is the number of arguments of each command,
// -1 means any number of values.
var commandArity = map[string]int{
	"add":          1,
	"insert":       2,
	"set":          2,
	"get":          1,
	"remove":       1,
	"removeAt":     1,
	"clear":        0,
	"size":         0,
	"isEmpty":      0,
	"indexOf":      1,
	"toArray":      0,
	"append":       -1,
	"removeValues": -1,
}

type session struct {
	ctx    context.Context
	list   list.List[int64]
	out    io.Writer
	logger xlog.XLogger
	stats  *sessionStats
}

// run executes the script line by line. A failed command does not stop the run,
// all the failures are returned together.
func (s *session) run(r io.Reader) error {
	var (
		merr    error
		lineNo  = 0
		scanner = bufio.NewScanner(r)
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		res, err := s.exec(line)
		s.stats.record(s.ctx, strings.Fields(line)[0], err)
		if err != nil {
			s.logger.ErrorStack(err, "command failed",
				zap.Int("line", lineNo),
				zap.String("command", line),
			)
			_, _ = fmt.Fprintf(s.out, "error: %s\n", err)
			merr = multierr.Append(merr, err)
			continue
		}
		s.logger.Debug("command done", zap.Int("line", lineNo), zap.String("command", line))
		_, _ = fmt.Fprintln(s.out, res)
	}
	if err := scanner.Err(); err != nil {
		merr = multierr.Append(merr, infra.WrapErrorStack(err))
	}
	return merr
}

func (s *session) exec(line string) (string, error) {
	fields := strings.Fields(line)
	cmd := fields[0]
	arity, ok := commandArity[cmd]
	if !ok {
		return "", infra.WrapErrorStackWithMessage(errUnknownCommand, strconv.Quote(cmd))
	}
	if arity >= 0 && len(fields)-1 != arity {
		return "", infra.WrapErrorStackWithMessage(errBadArguments,
			fmt.Sprintf("%s expects %d argument(s), got %d", cmd, arity, len(fields)-1))
	}
	args, err := parseArgs(cmd, fields[1:])
	if err != nil {
		return "", err
	}

	switch cmd {
	case "add":
		s.list.Add(args[0])
	case "insert":
		if err = s.list.Insert(args[0], args[1]); err != nil {
			return "", err
		}
	case "set":
		if err = s.list.Set(args[0], args[1]); err != nil {
			return "", err
		}
	case "get":
		v, err := s.list.Get(args[0])
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(v, 10), nil
	case "remove":
		return strconv.FormatInt(s.list.Remove(args[0]), 10), nil
	case "removeAt":
		v, err := s.list.RemoveAt(args[0])
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(v, 10), nil
	case "clear":
		s.list.Clear()
	case "size":
		return strconv.FormatInt(s.list.Len(), 10), nil
	case "isEmpty":
		return strconv.FormatBool(s.list.IsEmpty()), nil
	case "indexOf":
		return strconv.FormatInt(s.list.IndexOf(args[0]), 10), nil
	case "toArray":
		return formatValues(s.list.ToSlice()), nil
	case "append":
		s.list.Append(args...)
	case "removeValues":
		return strconv.FormatInt(s.list.RemoveValues(args...), 10), nil
	default:
	}
	return "ok", nil
}

func parseArgs(cmd string, fields []string) ([]int64, error) {
	args := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, infra.WrapErrorStackWithMessage(
				multierr.Combine(errBadArguments, err),
				fmt.Sprintf("%s argument %q", cmd, f),
			)
		}
		args = append(args, v)
	}
	return args, nil
}

func formatValues(values []int64) string {
	return "[" + strings.Join(lo.Map(values, func(v int64, _ int) string {
		return strconv.FormatInt(v, 10)
	}), " ") + "]"
}
