// Command ncfctl tareas de operación: migraciones, secuencias NCF, conciliación de stock y barrido de vencidas.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
