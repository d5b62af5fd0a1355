package borsh

import (
	"testing"

	"github.com/wippyai/idl-codec/idl"
)

const widgetsIDL = `{
  "version": "0.1.0",
  "name": "widgets",
  "instructions": [
    {"name": "initialize", "accounts": [], "args": []},
    {
      "name": "setData",
      "accounts": [{"name": "widget", "isMut": true, "isSigner": false}],
      "args": [{"name": "data", "type": "u64"}, {"name": "label", "type": "string"}]
    },
    {
      "name": "configure",
      "accounts": [],
      "args": [{"name": "mode", "type": {"defined": "Mode"}}, {"name": "limit", "type": {"option": "u32"}}]
    }
  ],
  "state": {
    "struct": {
      "name": "Counter",
      "type": {"kind": "struct", "fields": [{"name": "count", "type": "u64"}, {"name": "authority", "type": "publicKey"}]}
    },
    "methods": [
      {"name": "increment", "accounts": [], "args": [{"name": "by", "type": "u64"}]}
    ]
  },
  "accounts": [
    {
      "name": "Widget",
      "type": {
        "kind": "struct",
        "fields": [
          {"name": "owner", "type": "publicKey"},
          {"name": "amount", "type": "u64"},
          {"name": "mode", "type": {"defined": "Mode"}},
          {"name": "label", "type": "string"},
          {"name": "parts", "type": {"vec": {"defined": "Part"}}}
        ]
      }
    },
    {
      "name": "Gauge",
      "type": {
        "kind": "struct",
        "fields": [{"name": "level", "type": "u16"}, {"name": "reading", "type": {"coption": "u64"}}]
      }
    }
  ],
  "types": [
    {
      "name": "Mode",
      "type": {
        "kind": "enum",
        "variants": [
          {"name": "Off"},
          {"name": "Limited", "fields": [{"name": "max", "type": "u16"}]},
          {"name": "Burst", "fields": [{"name": "count", "type": "u8"}, {"name": "window", "type": "u32"}]}
        ]
      }
    },
    {
      "name": "Part",
      "type": {"kind": "struct", "fields": [{"name": "id", "type": "u32"}, {"name": "weight", "type": "u8"}]}
    },
    {
      "name": "TreeNode",
      "type": {
        "kind": "struct",
        "fields": [{"name": "value", "type": "u8"}, {"name": "children", "type": {"vec": {"defined": "TreeNode"}}}]
      }
    },
    {
      "name": "Link",
      "type": {
        "kind": "struct",
        "fields": [{"name": "value", "type": "u8"}, {"name": "next", "type": {"option": {"defined": "Link"}}}]
      }
    }
  ],
  "events": [
    {
      "name": "Transferred",
      "fields": [{"name": "from", "type": "publicKey", "index": false}, {"name": "amount", "type": "u64", "index": false}]
    }
  ]
}`

func widgetsDoc(t *testing.T) *idl.Idl {
	t.Helper()
	doc, err := idl.Parse([]byte(widgetsIDL))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}
