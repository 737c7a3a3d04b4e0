package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Ana Silva", want: "ana-silva"},
		{name: "accents", in: "João da Conceição", want: "joao-da-conceicao"},
		{name: "company", in: "Artium Soluções Ltda.", want: "artium-solucoes-ltda"},
		{name: "digits kept", in: "Empresa 42", want: "empresa-42"},
		{name: "collapses separators", in: "  Maria -- José  ", want: "maria-jose"},
		{name: "nothing usable", in: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.in))
		})
	}
}

func TestGenerateFileName(t *testing.T) {
	assert.Equal(t, "curriculo-ana.pdf", GenerateFileName("Currículo Ana.PDF"))
	assert.Equal(t, "cv.docx", GenerateFileName("cv.docx"))
	assert.Equal(t, "arquivo.pdf", GenerateFileName("@@.pdf"))
	assert.Equal(t, "notes", GenerateFileName("notes"))
	assert.Equal(t, "cv-final", GenerateFileName("cv.final$$$"))
}
