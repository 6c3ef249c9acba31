// Package ucsctest provides an in-memory UCS Central simulator and test
// helpers for exercising the client without real hardware.
//
// The simulator speaks just enough of the XML API for the SDK's needs:
// aaaLogin/aaaRefresh/aaaLogout, configResolveDn, configResolveClass,
// configResolveChildren, and configConfMos, against a managed-object tree
// held in memory.
package ucsctest

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ciscoucs/ucscgo/pkg/mo"
)

// Default credentials the simulator accepts.
const (
	DefaultUsername = "admin"
	DefaultPassword = "password"
)

// Error codes the simulator reports, matching the real endpoint's.
const (
	errAuth        = 551
	errStaleCookie = 552
	errNotFound    = 103
	errExists      = 105
)

// Simulator is a fake UCS Central instance.
type Simulator struct {
	Server *httptest.Server

	Username string
	Password string

	// RefreshPeriod is the outRefreshPeriod (seconds) reported on login.
	RefreshPeriod int

	mu      sync.Mutex
	objects map[string]*mo.MO // keyed by DN; Children unused, tree is by DN prefix
	cookies map[string]bool
}

// NewSimulator starts a simulator pre-seeded with the organizational root,
// the default device profile, and its LDAP container.
func NewSimulator() *Simulator {
	s := &Simulator{
		Username:      DefaultUsername,
		Password:      DefaultPassword,
		RefreshPeriod: 600,
		objects:       make(map[string]*mo.MO),
		cookies:       make(map[string]bool),
	}
	s.seedRaw(&mo.MO{
		ClassID: "orgOrg",
		DN:      "org-root",
		RN:      "org-root",
		Props:   mo.Props{"name": "root"},
	})
	s.mustSeed("orgDeviceProfile", "org-root", mo.Props{"name": "default"})
	s.seedRaw(&mo.MO{
		ClassID: "aaaLdapEp",
		DN:      "org-root/deviceprofile-default/ldap-ext",
		RN:      "ldap-ext",
		Props:   mo.Props{},
	})
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// URL returns the simulator's base URL (pass it as Config.Endpoint).
func (s *Simulator) URL() string { return s.Server.URL }

// Close shuts the HTTP server down.
func (s *Simulator) Close() { s.Server.Close() }

// Seed inserts an MO directly in to the tree, bypassing the API.
func (s *Simulator) Seed(classID, parentDN string, props mo.Props) (*mo.MO, error) {
	m, err := mo.New(classID, parentDN, props)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[m.DN] = m
	return m, nil
}

func (s *Simulator) mustSeed(classID, parentDN string, props mo.Props) {
	if _, err := s.Seed(classID, parentDN, props); err != nil {
		panic(err)
	}
}

func (s *Simulator) seedRaw(m *mo.MO) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[m.DN] = m
}

// Get returns the MO at dn, or nil.  The returned MO is the simulator's own
// copy; tests must not mutate it.
func (s *Simulator) Get(dn string) *mo.MO {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects[dn]
}

// Delete removes the MO at dn and its whole subtree, bypassing the API.
func (s *Simulator) Delete(dn string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteSubtreeLocked(dn)
}

func (s *Simulator) deleteSubtreeLocked(dn string) {
	for existing := range s.objects {
		if existing == dn || strings.HasPrefix(existing, dn+"/") {
			delete(s.objects, existing)
		}
	}
}

// ExpireSessions invalidates every session cookie, so the next request gets
// a stale-cookie error.
func (s *Simulator) ExpireSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cookies = make(map[string]bool)
}

type anyRequest struct {
	XMLName xml.Name

	InName     string `xml:"inName,attr"`
	InPassword string `xml:"inPassword,attr"`
	InCookie   string `xml:"inCookie,attr"`

	Cookie  string `xml:"cookie,attr"`
	DN      string `xml:"dn,attr"`
	ClassID string `xml:"classId,attr"`
	InDN    string `xml:"inDn,attr"`

	InConfigs struct {
		Pairs []struct {
			Key string   `xml:"key,attr"`
			MOs []*mo.MO `xml:",any"`
		} `xml:"pair"`
	} `xml:"inConfigs"`
}

func (s *Simulator) handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req anyRequest
	if err := xml.Unmarshal(body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	method := req.XMLName.Local
	switch method {
	case "aaaLogin":
		s.aaaLogin(w, &req)
	case "aaaRefresh":
		s.aaaRefresh(w, &req)
	case "aaaLogout":
		s.aaaLogout(w, &req)
	case "configResolveDn":
		if !s.checkCookie(w, method, req.Cookie) {
			return
		}
		s.configResolveDn(w, &req)
	case "configResolveClass":
		if !s.checkCookie(w, method, req.Cookie) {
			return
		}
		s.configResolveClass(w, &req)
	case "configResolveChildren":
		if !s.checkCookie(w, method, req.Cookie) {
			return
		}
		s.configResolveChildren(w, &req)
	case "configConfMos":
		if !s.checkCookie(w, method, req.Cookie) {
			return
		}
		s.configConfMos(w, &req)
	default:
		writeError(w, method, 2, fmt.Sprintf("unknown method %q", method))
	}
}

func (s *Simulator) checkCookie(w http.ResponseWriter, method, cookie string) bool {
	s.mu.Lock()
	ok := s.cookies[cookie]
	s.mu.Unlock()
	if !ok {
		writeError(w, method, errStaleCookie, "Authorization required")
	}
	return ok
}

func (s *Simulator) aaaLogin(w http.ResponseWriter, req *anyRequest) {
	if req.InName != s.Username || req.InPassword != s.Password {
		writeError(w, "aaaLogin", errAuth, "Authentication failed")
		return
	}
	cookie := uuid.NewString()
	s.mu.Lock()
	s.cookies[cookie] = true
	s.mu.Unlock()
	fmt.Fprintf(w, `<aaaLogin response="yes" outCookie=%q outRefreshPeriod="%d" outVersion="2.0(1a)"/>`,
		cookie, s.RefreshPeriod)
}

func (s *Simulator) aaaRefresh(w http.ResponseWriter, req *anyRequest) {
	s.mu.Lock()
	valid := s.cookies[req.InCookie]
	s.mu.Unlock()
	if !valid || req.InName != s.Username || req.InPassword != s.Password {
		writeError(w, "aaaRefresh", errStaleCookie, "Authorization required")
		return
	}
	cookie := uuid.NewString()
	s.mu.Lock()
	delete(s.cookies, req.InCookie)
	s.cookies[cookie] = true
	s.mu.Unlock()
	fmt.Fprintf(w, `<aaaRefresh response="yes" outCookie=%q outRefreshPeriod="%d"/>`,
		cookie, s.RefreshPeriod)
}

func (s *Simulator) aaaLogout(w http.ResponseWriter, req *anyRequest) {
	s.mu.Lock()
	delete(s.cookies, req.InCookie)
	s.mu.Unlock()
	fmt.Fprint(w, `<aaaLogout response="yes" outStatus="success"/>`)
}

func (s *Simulator) configResolveDn(w http.ResponseWriter, req *anyRequest) {
	s.mu.Lock()
	m := s.objects[req.DN]
	s.mu.Unlock()
	var buf strings.Builder
	buf.WriteString(`<configResolveDn response="yes"`)
	fmt.Fprintf(&buf, ` dn=%q>`, req.DN)
	buf.WriteString(`<outConfig>`)
	if m != nil {
		writeMO(&buf, m, "")
	}
	buf.WriteString(`</outConfig></configResolveDn>`)
	io.WriteString(w, buf.String()) //nolint:errcheck
}

func (s *Simulator) configResolveClass(w http.ResponseWriter, req *anyRequest) {
	s.mu.Lock()
	var found []*mo.MO
	for _, m := range s.objects {
		if m.ClassID == req.ClassID {
			found = append(found, m)
		}
	}
	s.mu.Unlock()
	sortByDN(found)
	var buf strings.Builder
	buf.WriteString(`<configResolveClass response="yes"><outConfigs>`)
	for _, m := range found {
		writeMO(&buf, m, "")
	}
	buf.WriteString(`</outConfigs></configResolveClass>`)
	io.WriteString(w, buf.String()) //nolint:errcheck
}

func (s *Simulator) configResolveChildren(w http.ResponseWriter, req *anyRequest) {
	s.mu.Lock()
	var found []*mo.MO
	prefix := req.InDN + "/"
	for dn, m := range s.objects {
		if !strings.HasPrefix(dn, prefix) || strings.Contains(dn[len(prefix):], "/") {
			continue
		}
		if req.ClassID != "" && m.ClassID != req.ClassID {
			continue
		}
		found = append(found, m)
	}
	s.mu.Unlock()
	sortByDN(found)
	var buf strings.Builder
	buf.WriteString(`<configResolveChildren response="yes"><outConfigs>`)
	for _, m := range found {
		writeMO(&buf, m, "")
	}
	buf.WriteString(`</outConfigs></configResolveChildren>`)
	io.WriteString(w, buf.String()) //nolint:errcheck
}

func (s *Simulator) configConfMos(w http.ResponseWriter, req *anyRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch before touching the tree, so a failed
	// commit applies nothing.
	for _, pair := range req.InConfigs.Pairs {
		for _, m := range pair.MOs {
			if m.DN == "" {
				m.DN = pair.Key
			}
			existing := s.objects[m.DN]
			switch {
			case strings.Contains(m.Status, mo.StatusDeleted):
				if existing == nil {
					writeError(w, "configConfMos", errNotFound,
						fmt.Sprintf("cannot find dn %q", m.DN))
					return
				}
			case strings.Contains(m.Status, mo.StatusCreated):
				if existing != nil && !strings.Contains(m.Status, mo.StatusModified) {
					writeError(w, "configConfMos", errExists,
						fmt.Sprintf("object already exists at %q", m.DN))
					return
				}
				parent := m.ParentDN()
				if parent != "" && s.objects[parent] == nil {
					writeError(w, "configConfMos", errNotFound,
						fmt.Sprintf("cannot find dn %q", parent))
					return
				}
			case strings.Contains(m.Status, mo.StatusModified):
				if existing == nil {
					writeError(w, "configConfMos", errNotFound,
						fmt.Sprintf("cannot find dn %q", m.DN))
					return
				}
			}
		}
	}

	var buf strings.Builder
	buf.WriteString(`<configConfMos response="yes"><outConfigs>`)
	for _, pair := range req.InConfigs.Pairs {
		fmt.Fprintf(&buf, `<pair key=%q>`, pair.Key)
		for _, m := range pair.MOs {
			status := m.Status
			switch {
			case strings.Contains(status, mo.StatusDeleted):
				s.deleteSubtreeLocked(m.DN)
				writeMO(&buf, m, mo.StatusDeleted)
			case strings.Contains(status, mo.StatusCreated):
				if existing := s.objects[m.DN]; existing != nil {
					existing.Set(m.Props)
					writeMO(&buf, existing, mo.StatusModified)
				} else {
					stored := &mo.MO{
						ClassID: m.ClassID,
						DN:      m.DN,
						RN:      m.RN,
						Props:   mo.Props{},
					}
					stored.Set(m.Props)
					s.objects[m.DN] = stored
					writeMO(&buf, stored, mo.StatusCreated)
				}
			default: // modified
				existing := s.objects[m.DN]
				existing.Set(m.Props)
				writeMO(&buf, existing, mo.StatusModified)
			}
		}
		buf.WriteString(`</pair>`)
	}
	buf.WriteString(`</outConfigs></configConfMos>`)
	io.WriteString(w, buf.String()) //nolint:errcheck
}

func writeError(w http.ResponseWriter, method string, code int, descr string) {
	var esc strings.Builder
	if err := xml.EscapeText(&esc, []byte(descr)); err != nil {
		panic(err)
	}
	fmt.Fprintf(w, `<%s response="yes" errorCode="%d" errorDescr="%s"/>`, method, code, esc.String())
}

func writeMO(buf *strings.Builder, m *mo.MO, status string) {
	out := &mo.MO{
		ClassID: m.ClassID,
		DN:      m.DN,
		Status:  status,
		Props:   m.Props,
	}
	bs, err := xml.Marshal(out)
	if err != nil {
		panic(err)
	}
	buf.Write(bs)
}

func sortByDN(mos []*mo.MO) {
	sort.Slice(mos, func(i, j int) bool { return mos[i].DN < mos[j].DN })
}
