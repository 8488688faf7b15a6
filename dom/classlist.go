package dom

import "strings"

// ClassList is a token view over its owner's class attribute. Reads split
// the attribute on whitespace runs, dropping empty tokens; writes join the
// unique tokens back in first-seen order.
type ClassList struct {
	owner *Node
}

func (c *ClassList) tokens() []string {
	raw := strings.Fields(c.owner.GetAttribute("class"))
	var out []string
	seen := map[string]bool{}
	for _, t := range raw {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func (c *ClassList) write(tokens []string) {
	c.owner.SetAttribute("class", strings.Join(tokens, " "))
}

func (c *ClassList) Contains(token string) bool {
	for _, t := range c.tokens() {
		if t == token {
			return true
		}
	}
	return false
}

func (c *ClassList) Add(tokens ...string) {
	cur := c.tokens()
	for _, token := range tokens {
		found := false
		for _, t := range cur {
			if t == token {
				found = true
				break
			}
		}
		if !found {
			cur = append(cur, token)
		}
	}
	c.write(cur)
}

func (c *ClassList) Remove(tokens ...string) {
	cur := c.tokens()
	var out []string
	for _, t := range cur {
		drop := false
		for _, token := range tokens {
			if t == token {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, t)
		}
	}
	c.write(out)
}

// Toggle removes a present token and adds an absent one, reporting whether
// the token is present afterwards.
func (c *ClassList) Toggle(token string) bool {
	if c.Contains(token) {
		c.Remove(token)
		return false
	}
	c.Add(token)
	return true
}

func (c *ClassList) Length() int {
	return len(c.tokens())
}

func (c *ClassList) Item(i int) string {
	t := c.tokens()
	if i < 0 || i >= len(t) {
		return ""
	}
	return t[i]
}

func (c *ClassList) Values() []string {
	return c.tokens()
}

func (c *ClassList) String() string {
	return strings.Join(c.tokens(), " ")
}
