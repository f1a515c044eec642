// Package fuzztests houses Go fuzz harnesses for the inspection pipeline
// (source -> lexer -> parser -> cops -> autocorrect). They guard against
// panics, hangs and broken invariants on arbitrary input.
//
// Назначение: прогонять байты через лексер, парсер и driver.InspectSource.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
