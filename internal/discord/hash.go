package discord

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
)

// hashCommands creates a deterministic hash for a set of application command
// definitions, independent of their order.
func hashCommands(defs []*discordgo.ApplicationCommand) string {
	normalized := make([]map[string]interface{}, len(defs))
	keys := make([]string, len(defs))
	for i, def := range defs {
		normalized[i] = normalizeForHash(def)
		keys[i] = fmt.Sprintf("%d:%s", def.Type, def.Name)
	}
	sort.Sort(byKey{keys: keys, values: normalized})

	data, _ := json.Marshal(normalized)
	sum := sha1.Sum(data)
	return fmt.Sprintf("%x", sum)
}

// normalizeForHash strips runtime-only fields (IDs, versions, etc.) and sorts options
func normalizeForHash(cmd *discordgo.ApplicationCommand) map[string]interface{} {
	obj := map[string]interface{}{
		"name":        cmd.Name,
		"description": cmd.Description,
		"type":        cmd.Type,
	}
	if cmd.DefaultMemberPermissions != nil {
		obj["default_member_permissions"] = *cmd.DefaultMemberPermissions
	}
	if len(cmd.Options) > 0 {
		obj["options"] = normalizeOptions(cmd.Options)
	}
	return obj
}

func normalizeOptions(opts []*discordgo.ApplicationCommandOption) []map[string]interface{} {
	normalized := make([]map[string]interface{}, len(opts))

	for i, o := range opts {
		entry := map[string]interface{}{
			"name":        o.Name,
			"description": o.Description,
			"type":        o.Type,
			"required":    o.Required,
		}
		if len(o.Options) > 0 {
			entry["options"] = normalizeOptions(o.Options)
		}
		normalized[i] = entry
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i]["name"].(string) < normalized[j]["name"].(string)
	})
	return normalized
}

type byKey struct {
	keys   []string
	values []map[string]interface{}
}

func (b byKey) Len() int           { return len(b.keys) }
func (b byKey) Less(i, j int) bool { return b.keys[i] < b.keys[j] }
func (b byKey) Swap(i, j int) {
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
	b.values[i], b.values[j] = b.values[j], b.values[i]
}
