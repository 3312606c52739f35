package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/multierr"

	"github.com/benz9527/xlist/lib/list"
	"github.com/benz9527/xlist/lib/xlog"
)

func newTestSession(t *testing.T, kind string, logOut io.Writer) (*session, *bytes.Buffer) {
	t.Helper()
	l, err := newList(kind, 0)
	require.NoError(t, err)
	out := &bytes.Buffer{}
	return &session{
		ctx:    context.Background(),
		list:   l,
		out:    out,
		logger: xlog.NewXLogger(xlog.WithXLoggerWriter(logOut), xlog.WithXLoggerLevel(xlog.LogLevelDebug)),
	}, out
}

func TestNewList(t *testing.T) {
	l, err := newList(kindArray, 4)
	require.NoError(t, err)
	require.IsType(t, &list.ArrayList[int64]{}, l)

	l, err = newList(kindLinked, 0)
	require.NoError(t, err)
	require.IsType(t, &list.LinkedList[int64]{}, l)

	_, err = newList("ring", 0)
	require.ErrorIs(t, err, errUnknownKind)

	for _, c := range []int64{-1, list.MaxInitialCapacity + 1, 1 << 62} {
		require.NotPanics(t, func() {
			_, err = newList(kindLinked, c)
		})
		require.ErrorIs(t, err, errBadCapacity)
		_, err = newList(kindArray, c)
		require.ErrorIs(t, err, errBadCapacity)
	}

	l, err = newList(kindLinked, list.MaxInitialCapacity)
	require.NoError(t, err)
	require.True(t, l.IsEmpty())
}

func TestSession_Scenarios(t *testing.T) {
	testcases := []struct {
		name     string
		script   string
		expected string
		failures int
	}{
		{
			name: "insert at index",
			script: `append 1 2 3
insert 0 5
toArray
insert 2 10
toArray
insert 6 10
size`,
			expected: "ok\nok\n[5 1 2 3]\nok\n[5 1 10 2 3]\n" +
				"error: insert index 6 with len 5: [x-list] index out of range\n5\n",
			failures: 1,
		},
		{
			name: "remove at index",
			script: `append 1 2 3
removeAt 2
toArray
removeAt 5`,
			expected: "ok\n3\n[1 2]\nerror: removeAt index 5 with len 2: [x-list] index out of range\n",
			failures: 1,
		},
		{
			name: "clear",
			script: `# comments and blank lines are skipped

append 1 2 3
clear
size
isEmpty
get 0`,
			expected: "ok\nok\n0\ntrue\nerror: get index 0 with len 0: [x-list] index out of range\n",
			failures: 1,
		},
		{
			name: "remove all occurrences",
			script: `append 1 2 2 3 2
remove 2
indexOf 2
indexOf 3
removeValues 1 9
toArray
add 7
set 0 8
get 0
get 1`,
			expected: "ok\n3\n-1\n1\n1\n[3]\nok\nok\n8\n7\n",
		},
		{
			name: "bad input",
			script: `push 1
add
add x
get 1 2`,
			expected: "error: \"push\": [xlist] unknown command\n" +
				"error: add expects 1 argument(s), got 0: [xlist] bad arguments\n",
			failures: 4,
		},
	}

	for _, kind := range []string{kindArray, kindLinked} {
		for _, tc := range testcases {
			t.Run(kind+"/"+tc.name, func(t *testing.T) {
				s, out := newTestSession(t, kind, io.Discard)
				err := s.run(strings.NewReader(tc.script))
				if tc.failures == 0 {
					require.NoError(t, err)
				} else {
					require.Len(t, multierr.Errors(err), tc.failures)
				}
				require.True(t, strings.HasPrefix(out.String(), tc.expected), out.String())
			})
		}
	}
}

func TestSession_FailuresAreLogged(t *testing.T) {
	logOut := &bytes.Buffer{}
	s, _ := newTestSession(t, kindLinked, logOut)
	err := s.run(strings.NewReader("get 3\nadd 1\n"))
	require.ErrorIs(t, err, list.ErrIndexOutOfRange)

	logs := logOut.String()
	require.Contains(t, logs, `"msg":"command failed"`)
	require.Contains(t, logs, `"command":"get 3"`)
	require.Contains(t, logs, `"errorStack"`)
	require.Contains(t, logs, `"msg":"command done"`)
}

func TestSession_BadArgumentsWrapParseError(t *testing.T) {
	s, _ := newTestSession(t, kindArray, io.Discard)
	_, err := s.exec("add 1.5")
	require.ErrorIs(t, err, errBadArguments)
	require.Contains(t, err.Error(), `add argument "1.5"`)
}

func TestSession_UnknownCommandBeforeArguments(t *testing.T) {
	s, _ := newTestSession(t, kindArray, io.Discard)
	for _, line := range []string{"push x", "push", "push 1 2"} {
		_, err := s.exec(line)
		require.ErrorIs(t, err, errUnknownCommand, line)
		require.NotErrorIs(t, err, errBadArguments, line)
	}
}

func collectSums(t *testing.T, reader sdkmetric.Reader, name string) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	res := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				op, _ := dp.Attributes.Value("op")
				res[op.AsString()] += dp.Value
			}
		}
	}
	return res
}

func TestSession_Stats(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	stats, err := newSessionStats(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	require.NoError(t, err)

	s, _ := newTestSession(t, kindLinked, io.Discard)
	s.stats = stats
	err = s.run(strings.NewReader("add 1\nadd 2\nget 0\nget 5\npush 1\nfoo\n"))
	require.Len(t, multierr.Errors(err), 3)

	require.Equal(t, map[string]int64{"add": 2, "get": 2, unknownOpAttr: 2},
		collectSums(t, reader, "xlist.commands"))
	require.Equal(t, map[string]int64{"get": 1, unknownOpAttr: 2},
		collectSums(t, reader, "xlist.command.failures"))
}

func setFlag[T any](t *testing.T, p *T, v T) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() {
		*p = old
	})
}

func TestRunMain_BadFlags(t *testing.T) {
	t.Run("log encoder", func(t *testing.T) {
		setFlag(t, logEncoder, "yaml")
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		require.Equal(t, 2, runMain(strings.NewReader("add 1\n"), stdout, stderr))
		require.Contains(t, stderr.String(), "[xlog] unknown log encoder")
		require.Empty(t, stdout.String())
	})
	t.Run("capacity", func(t *testing.T) {
		setFlag(t, kind, kindLinked)
		setFlag(t, capacity, int64(1<<62))
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		require.Equal(t, 2, runMain(strings.NewReader("add 1\n"), stdout, stderr))
		require.Contains(t, stderr.String(), "[xlist] bad capacity")
		require.Empty(t, stdout.String())
	})
}

func TestRunMain_Metrics(t *testing.T) {
	setFlag(t, metrics, true)
	setFlag(t, logEncoder, "text")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	require.Equal(t, 1, runMain(strings.NewReader("add 1\nget 4\n"), stdout, stderr))
	require.Contains(t, stderr.String(), "xlist.commands")
	require.Contains(t, stderr.String(), "xlist.command.failures")
}

func TestRunMain(t *testing.T) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := runMain(strings.NewReader("append 3 1\ntoArray\n"), stdout, stderr)
	require.Equal(t, 0, code)
	require.Equal(t, "ok\n[3 1]\n", stdout.String())

	stdout.Reset()
	code = runMain(strings.NewReader("get 9\n"), stdout, stderr)
	require.Equal(t, 1, code)
	require.Contains(t, stdout.String(), "error: get index 9 with len 0")
}
