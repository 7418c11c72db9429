package xmpp

import "testing"

func TestServerName(t *testing.T) {
	cases := map[string]string{
		"pilot@example.org":        "example.org",
		"pilot@example.org/mobile": "example.org",
		"example.org":              "example.org",
	}
	for jid, want := range cases {
		if got := serverName(jid); got != want {
			t.Errorf("serverName(%s) = %s; want %s", jid, got, want)
		}
	}
}

func TestSendMissingConfig(t *testing.T) {
	x := Xmpp{Config: Config{Jid: "pilot@example.org"}}
	if x.Configured() {
		t.Errorf("Configured() = true; want false")
	}
	if err := x.Send("hello"); err != ErrMissingConfig {
		t.Errorf("Send() = %v; want %v", err, ErrMissingConfig)
	}
}
