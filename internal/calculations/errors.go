package calculations

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration недопустимая комбинация параметров расчета
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation параметр ипотеки вне допустимого диапазона
	ErrValidation = errors.New("validation error")
	// ErrLookup в матрице процентов нет запрошенного года
	ErrLookup = errors.New("interest matrix lookup error")
	// ErrTypeMismatch заявленный тип инвестиции расходится с параметрами; частный случай ErrConfiguration
	ErrTypeMismatch = fmt.Errorf("%w: investment type mismatch", ErrConfiguration)
)
