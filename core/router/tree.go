package router

import (
	"fmt"
	"net/http"
	"strings"
)

// methodOrder fixes the iteration order over a node's method map so that
// Allow headers and OPTIONS synthesis are deterministic.
var methodOrder = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodOptions,
	http.MethodTrace,
}

var knownMethods = func() map[string]struct{} {
	m := make(map[string]struct{}, len(methodOrder))
	for _, s := range methodOrder {
		m[s] = struct{}{}
	}
	return m
}()

// route is a registered endpoint: a (method, pattern) pair bound to its
// handler and per-route middleware. Immutable after registration; inserting
// the same (method, pattern) again replaces the whole route.
type route struct {
	method      string
	pattern     string
	handler     HandlerFunc
	middlewares []Middleware
}

// node is a routing tree node keyed by path segment. Each node has any
// number of literal children, at most one parameter child and at most one
// wildcard child. Leaf nodes carry a method-to-route map.
type node struct {
	static   map[string]*node
	param    *node
	paramKey string // name bound to the param child; last registration wins
	wildcard *node
	routes   map[string]*route
}

// splitPath splits a path or pattern on '/', dropping empty segments so that
// trailing and duplicate slashes collapse to the same routing key.
func splitPath(p string) []string {
	parts := strings.Split(p, "/")
	segs := parts[:0]
	for _, s := range parts {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// insertRoute registers a handler in the tree, creating nodes as needed.
// A wildcard segment halts descent; segments after it would be unreachable
// and are rejected at registration time.
func (n *node) insertRoute(method, pattern string, handler HandlerFunc, middlewares []Middleware) {
	segs := splitPath(pattern)

	seen := make(map[string]struct{}, len(segs))
	cur := n
	for i, seg := range segs {
		switch {
		case seg == "*":
			if i != len(segs)-1 {
				panic(fmt.Errorf("%w: '%s'", ErrWildcardPosition, pattern))
			}
			if cur.wildcard == nil {
				cur.wildcard = &node{}
			}
			cur = cur.wildcard

		case strings.HasPrefix(seg, ":"):
			key := seg[1:]
			if key == "" {
				panic(fmt.Errorf("%w: '%s'", ErrEmptyParamName, pattern))
			}
			if _, dup := seen[key]; dup {
				panic(fmt.Errorf("%w: '%s' has duplicate key '%s'", ErrDuplicateParam, pattern, key))
			}
			seen[key] = struct{}{}
			if cur.param == nil {
				cur.param = &node{}
			}
			// A single param child per node: patterns that differ only in
			// the parameter name share the child and the newest name wins.
			cur.paramKey = key
			cur = cur.param

		default:
			if cur.static == nil {
				cur.static = make(map[string]*node)
			}
			child, ok := cur.static[seg]
			if !ok {
				child = &node{}
				cur.static[seg] = child
			}
			cur = child
		}
	}

	if cur.routes == nil {
		cur.routes = make(map[string]*route)
	}
	cur.routes[method] = &route{
		method:      method,
		pattern:     pattern,
		handler:     handler,
		middlewares: middlewares,
	}
}

// findRoute resolves (method, path segments) to a route, binding path
// parameters into params. Precedence is literal > parameter > wildcard, with
// backtracking: a branch whose shape matches but whose leaf lacks the method
// does not stop the search, sibling branches of lower precedence are still
// tried. Parameter bindings are restored on backtrack.
func (n *node) findRoute(method string, segs []string, params map[string]string) *route {
	if len(segs) == 0 {
		if n.routes != nil {
			return n.routes[method]
		}
		return nil
	}

	seg, rest := segs[0], segs[1:]

	if child, ok := n.static[seg]; ok {
		if rt := child.findRoute(method, rest, params); rt != nil {
			return rt
		}
	}

	if n.param != nil {
		prev, had := params[n.paramKey]
		params[n.paramKey] = seg
		if rt := n.param.findRoute(method, rest, params); rt != nil {
			return rt
		}
		if had {
			params[n.paramKey] = prev
		} else {
			delete(params, n.paramKey)
		}
	}

	// Wildcard matches the entire remainder without consuming segments.
	if n.wildcard != nil && n.wildcard.routes != nil {
		return n.wildcard.routes[method]
	}

	return nil
}

// routesOnPath collects every route reachable for the given path across all
// methods and branches, in precedence order. It feeds OPTIONS synthesis and
// distinguishes "path exists under another method" from "path unknown".
func (n *node) routesOnPath(segs []string, out []*route) []*route {
	if len(segs) == 0 {
		return n.appendRoutes(out)
	}

	seg, rest := segs[0], segs[1:]

	if child, ok := n.static[seg]; ok {
		out = child.routesOnPath(rest, out)
	}
	if n.param != nil {
		out = n.param.routesOnPath(rest, out)
	}
	if n.wildcard != nil {
		out = n.wildcard.appendRoutes(out)
	}
	return out
}

func (n *node) appendRoutes(out []*route) []*route {
	for _, m := range methodOrder {
		if rt, ok := n.routes[m]; ok {
			out = append(out, rt)
		}
	}
	return out
}

// walk visits every leaf in the tree, used for route introspection.
func (n *node) walk(fn func(rt *route)) {
	for _, m := range methodOrder {
		if rt, ok := n.routes[m]; ok {
			fn(rt)
		}
	}
	for _, child := range n.static {
		child.walk(fn)
	}
	if n.param != nil {
		n.param.walk(fn)
	}
	if n.wildcard != nil {
		n.wildcard.walk(fn)
	}
}
