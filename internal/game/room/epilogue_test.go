package room

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/apperrors"
)

// stubEpilogues 计数的结语生成桩，release 非 nil 时阻塞到其关闭
type stubEpilogues struct {
	calls   atomic.Int32
	release chan struct{}
}

func (s *stubEpilogues) Epilogue(ctx context.Context, req *EpilogueRequest) (string, error) {
	s.calls.Add(1)
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "事件就此落幕。", nil
}

func endGame(r *Room) {
	r.mu.Lock()
	r.GameEnded = true
	r.transitionTo(PhaseMissionComplete)
	r.mu.Unlock()
}

func TestGenerateEpilogue(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)
	src := &stubEpilogues{}
	m.SetEpilogueSource(src)

	room, _ := newStartedRoom(t, m, 3)
	endGame(room)

	epilogue, err := m.GenerateEpilogue(context.Background(), room.Code, "p1")
	require.NoError(t, err)
	assert.Equal(t, "事件就此落幕。", epilogue)
	assert.Equal(t, int32(1), src.calls.Load())

	// 第二次请求命中缓存，不再调用生成服务
	epilogue, err = m.GenerateEpilogue(context.Background(), room.Code, "p1")
	require.NoError(t, err)
	assert.Equal(t, "事件就此落幕。", epilogue)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestGenerateEpilogue_Requirements(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)
	m.SetEpilogueSource(&stubEpilogues{})

	room, _ := newStartedRoom(t, m, 3)

	// 任务未完成
	_, err := m.GenerateEpilogue(context.Background(), room.Code, "p1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPhase)

	endGame(room)

	// 仅主持人可请求
	_, err = m.GenerateEpilogue(context.Background(), room.Code, "p2")
	assert.ErrorIs(t, err, apperrors.ErrNotHost)

	_, err = m.GenerateEpilogue(context.Background(), "NOPE99", "p1")
	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)
}

func TestGenerateEpilogue_SingleFlight(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)
	src := &stubEpilogues{release: make(chan struct{})}
	m.SetEpilogueSource(src)

	room, _ := newStartedRoom(t, m, 3)
	endGame(room)

	const concurrent = 4
	results := make([]string, concurrent)
	errs := make([]error, concurrent)

	var wg sync.WaitGroup
	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = m.GenerateEpilogue(context.Background(), room.Code, "p1")
		}(i)
	}

	// 等待首个请求占住生成，然后放行
	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, waitTimeout, waitTick)
	close(src.release)
	wg.Wait()

	for i := 0; i < concurrent; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "事件就此落幕。", results[i])
	}
	assert.Equal(t, int32(1), src.calls.Load())
}
