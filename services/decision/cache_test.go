package decision

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomsched/models"
)

// memRedis answers GET and SET over the RESP protocol on in-memory pipes.
type memRedis struct {
	mu   sync.Mutex
	data map[string]string
	cmds [][]string
}

func newMemRedisClient(t *testing.T) (*redis.Client, *memRedis) {
	srv := &memRedis{data: map[string]string{}}
	client := redis.NewClient(&redis.Options{
		Addr: "mem",
		Dialer: func(context.Context, string, string) (net.Conn, error) {
			c, s := net.Pipe()
			go srv.serve(s)
			return c, nil
		},
	})
	t.Cleanup(func() { _ = client.Close() })
	return client, srv
}

func (m *memRedis) commands() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]string(nil), m.cmds...)
}

func (m *memRedis) serve(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	for {
		args, err := readCommand(r)
		if err != nil {
			return
		}

		m.mu.Lock()
		m.cmds = append(m.cmds, args)
		var reply string
		switch strings.ToLower(args[0]) {
		case "get":
			if v, ok := m.data[args[1]]; ok {
				reply = fmt.Sprintf("$%d\r\n%s\r\n", len(v), v)
			} else {
				reply = "$-1\r\n"
			}
		case "set":
			m.data[args[1]] = args[2]
			reply = "+OK\r\n"
		default:
			reply = "-ERR unknown command\r\n"
		}
		m.mu.Unlock()

		if _, err := io.WriteString(conn, reply); err != nil {
			return
		}
	}
}

func readCommand(r *bufio.Reader) ([]string, error) {
	header, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(header, "*")))
	if err != nil {
		return nil, err
	}
	args := make([]string, 0, n)
	for i := 0; i < n; i++ {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		size, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "$")))
		if err != nil {
			return nil, err
		}
		buf := make([]byte, size+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		args = append(args, string(buf[:size]))
	}
	return args, nil
}

func TestRedisDecisionCache(t *testing.T) {
	ctx := context.Background()
	client, srv := newMemRedisClient(t)
	cache := NewRedisDecisionCache(client, 10*time.Minute)

	t.Run("miss is nil without error", func(t *testing.T) {
		got, err := cache.Get(ctx, "absent")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("set uses the key prefix and ttl", func(t *testing.T) {
		decision := models.BookingDecision{
			Conflicts: []models.ConflictInfo{{ExistingID: "A", OverlapStart: "2025-01-01T10:30:00.000Z", OverlapEnd: "2025-01-01T11:00:00.000Z"}},
			Accepted:  []models.Booking{{ID: "C_part1", RoomID: "R1", Start: "2025-01-01T11:00:00.000Z", End: "2025-01-01T11:30:00.000Z", Priority: 1.5}},
		}
		require.NoError(t, cache.Set(ctx, "abc", decision))

		cmds := srv.commands()
		last := cmds[len(cmds)-1]
		require.Len(t, last, 5)
		assert.Equal(t, "set", strings.ToLower(last[0]))
		assert.Equal(t, "decision:abc", last[1])
		assert.Equal(t, "ex", strings.ToLower(last[3]))
		assert.Equal(t, "600", last[4])

		got, err := cache.Get(ctx, "abc")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, decision, *got)
	})

	t.Run("corrupt entry is an error", func(t *testing.T) {
		srv.mu.Lock()
		srv.data["decision:bad"] = "{not json"
		srv.mu.Unlock()

		got, err := cache.Get(ctx, "bad")
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}
