package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHHMM(t *testing.T) {
	for _, ok := range []string{"00:00", "09:30", "23:59"} {
		assert.True(t, IsHHMM(ok), ok)
	}
	for _, bad := range []string{"", "9:30", "24:00", "12:60", "12-30", "ab:cd", "+8:00", "08:+5", "-0:30", " 8:00"} {
		assert.False(t, IsHHMM(bad), bad)
	}
}

func TestRegisterHHMM(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register())

	type payload struct {
		Start string `binding:"omitempty,hhmm"`
	}

	v := binding.Validator.Engine().(*validator.Validate)
	assert.NoError(t, v.Struct(payload{Start: "08:00"}))
	assert.NoError(t, v.Struct(payload{}))
	assert.Error(t, v.Struct(payload{Start: "8h"}))
}

type fakeResolver struct {
	mx    map[string]bool
	hosts map[string]bool
	calls int
}

func (f *fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	f.calls++
	if f.mx[name] {
		return []*net.MX{{Host: "mx." + name, Pref: 10}}, nil
	}
	return nil, errors.New("no such host")
}

func (f *fakeResolver) LookupHost(_ context.Context, host string) ([]string, error) {
	if f.hosts[host] {
		return []string{"203.0.113.7"}, nil
	}
	return nil, errors.New("no such host")
}

func TestEmailDomainChecker(t *testing.T) {
	r := &fakeResolver{
		mx:    map[string]bool{"navalha.com.br": true},
		hosts: map[string]bool{"so-a-record.dev": true},
	}
	check := NewEmailDomainChecker(r)
	ctx := context.Background()

	assert.True(t, check.Valid(ctx, "dono@Navalha.com.br"))
	assert.True(t, check.Valid(ctx, "dono@so-a-record.dev"))
	assert.False(t, check.Valid(ctx, "dono@gmial.con"))
}

func TestEmailDomainCheckerSkipsLookupForMalformed(t *testing.T) {
	r := &fakeResolver{}
	check := NewEmailDomainChecker(r)

	for _, bad := range []string{"no-at-sign", "trailing@", "@navalha.com", "dono@localhost", "dono@.com"} {
		assert.False(t, check.Valid(context.Background(), bad), bad)
	}
	assert.Zero(t, r.calls)
}
