package cos

import "testing"

func TestParserOptionsCacheCapacity(t *testing.T) {
	cases := []struct {
		name string
		opt  ParserOptions
		want int
	}{
		{"zero selects default", ParserOptions{}, defaultCacheCapacity},
		{"negative disables caching", ParserOptions{CacheCapacity: -1}, 0},
		{"positive is used verbatim", ParserOptions{CacheCapacity: 10}, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.opt.cacheCapacity(); got != c.want {
				t.Errorf("cacheCapacity() = %d, want %d", got, c.want)
			}
		})
	}
}

func TestParserOptionsLoggerDefaultsToPackageDefault(t *testing.T) {
	var o ParserOptions
	if o.logger() != defaultLogger {
		t.Error("nil Logger should fall back to defaultLogger")
	}

	rl := &recordingLogger{}
	o = ParserOptions{Logger: rl}
	if o.logger() != Logger(rl) {
		t.Error("a set Logger should be returned unchanged")
	}
}

func TestParserOptionsCryptDefaultsToPlain(t *testing.T) {
	var o ParserOptions
	if _, ok := o.crypt().(PlainCryptInfo); !ok {
		t.Errorf("crypt() = %T, want PlainCryptInfo", o.crypt())
	}

	var c PlainCryptInfo
	o = ParserOptions{Crypt: c}
	if o.crypt() != CryptInfo(c) {
		t.Error("a set Crypt should be returned unchanged")
	}
}
