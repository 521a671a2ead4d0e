package appointment

import (
	"errors"
	"fmt"
)

// ErrLookup marca falha de leitura na persistência. Quem chama consegue
// distinguir "nenhum horário" de "não foi possível consultar".
var ErrLookup = errors.New("lookup_failed")

func lookupErr(what string, err error) error {
	return fmt.Errorf("%s: %w: %w", what, ErrLookup, err)
}
