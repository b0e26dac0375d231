package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pjrtgo/pjrtgo/pjrt"
)

var vectorAddProgramPath string

var vectorAddCmd = &cobra.Command{
	Use:   "vector-add",
	Short: "Run the vector-identity StableHLO demo",
	Long:  `Compiles a 128-element vector program and runs it once on a zeroed input vector.`,
	RunE:  runVectorAdd,
}

func init() {
	vectorAddCmd.Flags().StringVar(&vectorAddProgramPath, "program", "myStableHlo.txt", "path to the StableHLO program text file")
	rootCmd.AddCommand(vectorAddCmd)
}

func runVectorAdd(cmd *cobra.Command, args []string) error {
	background := context.Background()

	programBytes, err := os.ReadFile(vectorAddProgramPath)
	if err != nil {
		return fmt.Errorf("reading StableHLO program: %w", err)
	}

	ctx, err := pjrt.NewContext()
	if err != nil {
		return fmt.Errorf("initializing PJRT: %w", err)
	}
	defer ctx.Close()

	client, err := pjrt.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}
	defer client.Close()

	platform, err := client.PlatformName()
	if err != nil {
		return fmt.Errorf("reading platform name: %w", err)
	}
	fmt.Printf("Platform Name: %s\n", platform)

	device, err := client.GetFirstDevice()
	if err != nil {
		return fmt.Errorf("getting device: %w", err)
	}

	executable, err := client.CompileFromStableHloString(string(programBytes))
	if err != nil {
		return fmt.Errorf("compiling program: %w", err)
	}
	defer executable.Close()

	hostInput := make([]float32, 128)
	inputFuture, err := pjrt.TransferToDevice(client, hostInput, []int64{128}, &device)
	if err != nil {
		return fmt.Errorf("starting transfer: %w", err)
	}
	inputBuffer, err := inputFuture.Get(background)
	if err != nil {
		return fmt.Errorf("transferring input: %w", err)
	}
	defer inputBuffer.Close()
	fmt.Println("Input buffer created and transfer to device is complete.")

	outputFuture, err := executable.Execute(&device, []*pjrt.Buffer{inputBuffer})
	if err != nil {
		return fmt.Errorf("launching execution: %w", err)
	}
	outputs, err := outputFuture.Get(background)
	if err != nil {
		return fmt.Errorf("executing: %w", err)
	}
	defer func() {
		for _, b := range outputs {
			b.Close()
		}
	}()
	fmt.Println("Execution complete")

	hostFuture, err := pjrt.ToHost[float32](outputs[0])
	if err != nil {
		return fmt.Errorf("starting readback: %w", err)
	}
	result, err := hostFuture.Get(background)
	if err != nil {
		return fmt.Errorf("reading back result: %w", err)
	}

	fmt.Printf("Output value: %v\n", result[0])
	return nil
}
