package roadmap

import "fmt"

// sampleTasks draws min(n, len(tasks)) tasks without replacement. With no
// tasks it returns n placeholders "<prefix> 1" .. "<prefix> n".
func (s *Synthesizer) sampleTasks(tasks []string, n int, prefix string) []string {
	if len(tasks) == 0 {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("%s %d", prefix, i+1)
		}
		return out
	}

	k := min(n, len(tasks))
	pool := make([]string, len(tasks))
	copy(pool, tasks)

	// Partial Fisher-Yates: the first k slots end up a uniform sample.
	for i := 0; i < k; i++ {
		j := i + s.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
