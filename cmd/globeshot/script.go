package main

import (
	"fmt"
	"strconv"
	"strings"

	"globeview/internal/globe"
)

// command is one step of a headless navigation script.
type command struct {
	op           string // move, rotl, rotr, jump, place
	dPitch, dYaw float64
	kind         globe.Transition
	lat, lon     string
	place        string
}

var directions = []struct {
	prefix     string
	pitch, yaw float64
	kind       globe.Transition
}{
	{"up", 1, 0, globe.WipeFromTop},
	{"down", -1, 0, globe.WipeFromBottom},
	{"left", 0, -1, globe.WipeFromLeft},
	{"right", 0, 1, globe.WipeFromRight},
}

// parseScript reads comma separated steps such as
// "up45,right90,rotl,jump:10:20,place:Sydney".
func parseScript(s string) ([]command, error) {
	var out []command
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		c, err := parseCommand(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func parseCommand(tok string) (command, error) {
	switch {
	case tok == "rotl":
		return command{op: "rotl"}, nil
	case tok == "rotr":
		return command{op: "rotr"}, nil
	case strings.HasPrefix(tok, "jump:"):
		parts := strings.Split(tok, ":")
		if len(parts) != 3 {
			return command{}, fmt.Errorf("script: %q: want jump:LAT:LON", tok)
		}
		return command{op: "jump", lat: parts[1], lon: parts[2]}, nil
	case strings.HasPrefix(tok, "place:"):
		name := strings.TrimPrefix(tok, "place:")
		if name == "" {
			return command{}, fmt.Errorf("script: %q: missing place name", tok)
		}
		return command{op: "place", place: name}, nil
	}
	for _, d := range directions {
		rest, ok := strings.CutPrefix(tok, d.prefix)
		if !ok {
			continue
		}
		deg, err := strconv.ParseFloat(rest, 64)
		if err != nil || deg <= 0 {
			return command{}, fmt.Errorf("script: %q: want %s<degrees>", tok, d.prefix)
		}
		return command{op: "move", dPitch: d.pitch * deg, dYaw: d.yaw * deg, kind: d.kind}, nil
	}
	return command{}, fmt.Errorf("script: unknown step %q", tok)
}

func (c command) apply(n *globe.Navigator) error {
	switch c.op {
	case "move":
		n.Navigate(c.dPitch, c.dYaw, c.kind)
	case "rotl":
		n.RotateLeft()
	case "rotr":
		n.RotateRight()
	case "jump":
		return n.JumpTo(c.lat, c.lon)
	case "place":
		for _, b := range n.Scene().Bookmarks {
			if strings.EqualFold(b.Place, c.place) {
				n.JumpToBookmark(b)
				return nil
			}
		}
		return fmt.Errorf("script: no place named %q", c.place)
	}
	return nil
}
