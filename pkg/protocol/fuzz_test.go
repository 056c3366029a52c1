package protocol

import (
	"reflect"
	"testing"
)

// FuzzPhoenixCodec checks that anything the Phoenix codec accepts survives
// an encode/decode roundtrip.
func FuzzPhoenixCodec(f *testing.F) {
	f.Add([]byte(`[null,"1","lv:abc","select_tab",{"tab":"dev"}]`))
	f.Add([]byte(`["1","2","lv:abc","phx_join",{"url":"/"}]`))
	f.Add([]byte(`[null,null,"phoenix","heartbeat",null]`))
	f.Add([]byte(`[null,"3","lv:abc","scroll",{"y":700,"sections":[{"id":"about","top":0}]}]`))
	f.Add([]byte(`[]`))
	f.Add([]byte(`[1,2,3,4,5]`))
	f.Add([]byte(`{"ref":"1"}`))
	f.Add([]byte(`{malformed`))

	codec := NewPhoenixCodec()

	f.Fuzz(func(t *testing.T, data []byte) {
		msg, err := codec.Decode(data)
		if err != nil {
			return
		}

		out, err := codec.Encode(msg)
		if err != nil {
			return
		}

		msg2, err := codec.Decode(out)
		if err != nil {
			t.Errorf("failed to decode encoded message: %v", err)
			return
		}

		if !messagesEqual(msg, msg2) {
			t.Errorf("roundtrip mismatch: %+v != %+v", msg, msg2)
		}
	})
}

func messagesEqual(a, b *Message) bool {
	if a.Ref != b.Ref || a.JoinRef != b.JoinRef || a.Topic != b.Topic || a.Event != b.Event {
		return false
	}
	if len(a.Payload) != len(b.Payload) {
		return false
	}
	for k, v := range a.Payload {
		if !reflect.DeepEqual(v, b.Payload[k]) {
			return false
		}
	}
	return true
}
