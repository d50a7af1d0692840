package notify

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestSubscribeNotify(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodetree.notify")
	defer teardown()
	//
	reg := NewRegistry()
	var got []string
	s1 := reg.Subscribe("pane-1", func(k string) { got = append(got, "a:"+k) })
	reg.Subscribe("pane-1", func(k string) { got = append(got, "b:"+k) })
	reg.Subscribe(RootKey, func(k string) { got = append(got, "r:"+k) })
	assert.Equal(t, 2, reg.Notify("pane-1"))
	assert.Equal(t, []string{"a:pane-1", "b:pane-1"}, got)
	s1.Unsubscribe()
	s1.Unsubscribe()
	got = nil
	reg.Notify("pane-1")
	reg.Notify(RootKey)
	assert.Equal(t, []string{"b:pane-1", "r:root"}, got)
	assert.Equal(t, 0, reg.Notify("nobody"))
}

func TestUnsubscribeLast(t *testing.T) {
	reg := NewRegistry()
	s := reg.Subscribe("k", func(string) {})
	assert.Equal(t, 1, reg.Listeners("k"))
	s.Unsubscribe()
	assert.Equal(t, 0, reg.Listeners("k"))
	reg.Subscribe("k", func(string) {})
	reg.Clear()
	assert.Equal(t, 0, reg.Listeners("k"))
}

func TestListenerMaySubscribeOtherKeys(t *testing.T) {
	reg := NewRegistry()
	calls := 0
	reg.Subscribe("a", func(string) {
		reg.Subscribe("b", func(string) { calls++ })
	})
	reg.Notify("a")
	reg.Notify("b")
	assert.Equal(t, 1, calls)
}
