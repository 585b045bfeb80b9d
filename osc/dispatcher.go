package osc

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Method is an interface for OSC Methods.
type Method interface {
	HandleMessage(msg *Message)
}

// MethodFunc implements the Method interface. Type definition for an OSC
// Method function.
type MethodFunc func(msg *Message)

// HandleMessage calls itself with the given OSC Message. Implements the
// Method interface.
func (f MethodFunc) HandleMessage(msg *Message) {
	f(msg)
}

// Dispatcher handles the dispatching of received OSC Packets to Methods for
// their given Address.
type Dispatcher struct {
	methods map[string]Method
}

// AddMethod adds a new OSC Method for the given OSC Address.
func (d *Dispatcher) AddMethod(addr string, method Method) error {
	if d.methods == nil {
		d.methods = make(map[string]Method)
	}

	if strings.ContainsAny(addr, "*?,[]{}# ") {
		return fmt.Errorf("AddMethod: OSC Method may not contain any characters in \"*?,[]{}# \"")
	}

	if _, ok := d.methods[addr]; ok {
		return fmt.Errorf("AddMethod: OSC Method exists already")
	}

	d.methods[addr] = method
	return nil
}

// AddMethodFunc allows you to just pass a MethodFunc.
func (d *Dispatcher) AddMethodFunc(addr string, method MethodFunc) error {
	return d.AddMethod(addr, method)
}

// Dispatch dispatches OSC Packets. Messages are matched against the
// registered Methods; bundles are scheduled according to their time tag and
// their elements dispatched recursively.
func (d *Dispatcher) Dispatch(packet Packet) {
	switch p := packet.(type) {
	case *Message:
		d.dispatchMessage(p)

	case *Bundle:
		time.AfterFunc(p.Timetag.ExpiresIn(), func() {
			for _, elem := range p.Elements {
				d.Dispatch(elem)
			}
		})
	}
}

func (d *Dispatcher) dispatchMessage(p *Message) {
	r, err := getRegEx(p.Address)
	if err != nil {
		return
	}

	// The OSC Spec mentions that each address is divided into parts, so we
	// could use a radix tree here. For now matching the longest expansion
	// per registered method is enough.
	r.Longest()
	aParts := len(strings.Split(p.Address, "/"))
	for addr, method := range d.methods {
		if aParts == len(strings.Split(addr, "/")) && r.FindString(addr) == addr {
			method.HandleMessage(p)
		}
	}
}

// getRegEx returns a regexp.Regexp for the given address.
func getRegEx(pattern string) (*regexp.Regexp, error) {
	r := strings.NewReplacer(
		".", `\.`,
		"(", `\(`,
		")", `\)`,
		"*", "[^/]*",
		"{", "(",
		",", "|",
		"}", ")",
		"?", "[^/]",
		"!", "^",
	)
	pattern = r.Replace(pattern)

	return regexp.Compile(pattern)
}
