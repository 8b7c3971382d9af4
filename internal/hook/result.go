package hook

import (
	"fmt"
	"unsafe"

	"github.com/vklens/vklens/internal/vk"
)

// HookResult is one completed hook's captured data, pushed onto a
// ResultQueue for the GUI to consume (spec.md §4.8).
type HookResult struct {
	Target Path
	Kind   InstrumentKind

	// TimestampStartNs/TimestampEndNs are valid for InstrumentTimestamp,
	// converted from driver timestamp ticks by Retire using its
	// timestampPeriodNs argument.
	TimestampStartNs, TimestampEndNs uint64

	// PipelineStatistics holds the single counters GetQueryPoolResults
	// returned for InstrumentPipelineStatistics, in the bit order of
	// defaultPipelineStatistics.
	PipelineStatistics []uint64

	// Err is non-nil if retirement could read back no usable data
	// (vkGetQueryPoolResults failed); the GUI view
	// degrades per spec.md §4.8's failure semantics instead of blocking.
	Err error
}

// ResultQueue is the hook's bounded single-producer/single-consumer
// result channel (spec.md §5's "bounded... requirement", capacity 1),
// the same shape as internal/thread.RenderLoop's frameReady/frameDone
// pair generalized to carry a payload instead of a bare signal.
type ResultQueue struct {
	ch chan HookResult
}

// NewResultQueue returns an empty, ready-to-use queue.
func NewResultQueue() *ResultQueue {
	return &ResultQueue{ch: make(chan HookResult, 1)}
}

// Push delivers result to the queue, replacing whatever stale result was
// sitting there unconsumed — the GUI only ever wants the most recent
// completion for the currently-armed target, not a backlog of them.
func (q *ResultQueue) Push(result HookResult) {
	select {
	case q.ch <- result:
	default:
		select {
		case <-q.ch:
		default:
		}
		select {
		case q.ch <- result:
		default:
		}
	}
}

// TryPop returns the queued result without blocking, reporting false if
// none is waiting.
func (q *ResultQueue) TryPop() (HookResult, bool) {
	select {
	case r := <-q.ch:
		return r, true
	default:
		return HookResult{}, false
	}
}

// Pop blocks until a result is pushed.
func (q *ResultQueue) Pop() HookResult {
	return <-q.ch
}

// Retire reads back h's query-pool results (if any), pushes a
// HookResult onto queue, and destroys the pool — called once the
// submission carrying the hooked secondary has been observed retired,
// per spec.md §4.8's "retirement reads back the captured data and
// pushes a completion record onto the hook's result queue."
// timestampPeriodNs converts raw device timestamp ticks to nanoseconds
// (VkPhysicalDeviceLimits::timestampPeriod); pass 1 if unknown.
func Retire(c *vk.Commands, device vk.Device, h *Hook, queue *ResultQueue, timestampPeriodNs float64) {
	h.setState(StateCompleted)

	result := HookResult{Target: h.Target, Kind: h.Kind}

	if h.Pool != nil {
		switch h.Kind {
		case InstrumentTimestamp:
			var raw [2]uint64
			res := c.GetQueryPoolResults(device, h.Pool.Raw, 0, 2, uint64(unsafe.Sizeof(raw)), unsafe.Pointer(&raw[0]), 8,
				vk.QueryResultFlags(queryResult64|queryResultWait))
			if res != vk.Success {
				result.Err = fmt.Errorf("hook: vkGetQueryPoolResults failed: %v", res)
			} else {
				result.TimestampStartNs = uint64(float64(raw[0]) * timestampPeriodNs)
				result.TimestampEndNs = uint64(float64(raw[1]) * timestampPeriodNs)
			}

		case InstrumentPipelineStatistics:
			stats := make([]uint64, popcount(uint32(defaultPipelineStatistics)))
			res := c.GetQueryPoolResults(device, h.Pool.Raw, 0, 1, uint64(len(stats))*8, unsafe.Pointer(&stats[0]), uint64(len(stats))*8,
				vk.QueryResultFlags(queryResult64|queryResultWait))
			if res != vk.Success {
				result.Err = fmt.Errorf("hook: vkGetQueryPoolResults failed: %v", res)
			} else {
				result.PipelineStatistics = stats
			}
		}
		c.DestroyQueryPool(device, h.Pool.Raw)
		h.Pool = nil
	}

	queue.Push(result)
}

// queryResult64/queryResultWait mirror VK_QUERY_RESULT_64_BIT and
// VK_QUERY_RESULT_WAIT_BIT; the hook always waits synchronously for its
// own query results since retirement already implies the submission
// completed.
const (
	queryResult64   = 0x00000001
	queryResultWait = 0x00000002
)

func popcount(x uint32) int {
	n := 0
	for x != 0 {
		n += int(x & 1)
		x >>= 1
	}
	return n
}
