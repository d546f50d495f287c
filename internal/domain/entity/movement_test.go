package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estoque-sync/internal/domain/entity"
)

func TestEncodeObs(t *testing.T) {
	tests := []struct {
		name      string
		matricula string
		obs       string
		want      string
	}{
		{"com matrícula e obs", "007", "baixa manual", "[Mat: 007] baixa manual"},
		{"com matrícula sem obs", "007", "", "[Mat: 007]"},
		{"sem matrícula passa direto", "", "baixa manual", "baixa manual"},
		{"sem matrícula e sem obs", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entity.EncodeObs(tt.matricula, tt.obs))
		})
	}
}

func TestDecodeObs_SimetricoComEncode(t *testing.T) {
	mat, obs := entity.DecodeObs(entity.EncodeObs("007", "baixa manual"))
	assert.Equal(t, "007", mat)
	assert.Equal(t, "baixa manual", obs)

	mat, obs = entity.DecodeObs(entity.EncodeObs("13-B", ""))
	assert.Equal(t, "13-B", mat)
	assert.Empty(t, obs)
}

func TestDecodeObs_SemPrefixoDevolveOriginal(t *testing.T) {
	mat, obs := entity.DecodeObs("observação livre sem prefixo")
	assert.Empty(t, mat)
	assert.Equal(t, "observação livre sem prefixo", obs)
}
