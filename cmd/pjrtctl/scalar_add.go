package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pjrtgo/pjrtgo/pjrt"
)

var scalarAddProgramPath string

var scalarAddCmd = &cobra.Command{
	Use:   "scalar-add",
	Short: "Run the scalar-add StableHLO demo",
	Long:  `Compiles a scalar-add StableHLO program and runs it on inputs 0..9, verifying output == input+1.`,
	RunE:  runScalarAdd,
}

func init() {
	scalarAddCmd.Flags().StringVar(&scalarAddProgramPath, "program", "scalar_add_1.stablehlo", "path to the StableHLO program text file")
	rootCmd.AddCommand(scalarAddCmd)
}

func runScalarAdd(cmd *cobra.Command, args []string) error {
	programBytes, err := os.ReadFile(scalarAddProgramPath)
	if err != nil {
		return fmt.Errorf("reading StableHLO program: %w", err)
	}

	ctx, err := pjrt.NewContext()
	if err != nil {
		return fmt.Errorf("initializing PJRT: %w", err)
	}
	defer ctx.Close()

	major, minor := ctx.APIVersion()
	fmt.Printf("PJRT API Version: %d.%d\n", major, minor)

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

	executable, err := client.CompileFromStableHloString(string(programBytes))
	if err != nil {
		return fmt.Errorf("compiling program: %w", err)
	}
	defer executable.Close()

	device, err := client.GetFirstDevice()
	if err != nil {
		return fmt.Errorf("getting device: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err := executeAndVerifyScalarAdd(client, device, executable, float32(i)); err != nil {
			return err
		}
	}
	return nil
}

func executeAndVerifyScalarAdd(client *pjrt.Client, device pjrt.DeviceView, executable *pjrt.LoadedExecutable, input float32) error {
	background := context.Background()

	inputFuture, err := pjrt.TransferToDevice(client, []float32{input}, nil, &device)
	if err != nil {
		return fmt.Errorf("starting transfer: %w", err)
	}
	inputBuffer, err := inputFuture.Get(background)
	if err != nil {
		return fmt.Errorf("transferring input: %w", err)
	}
	defer inputBuffer.Close()

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

	hostFuture, err := pjrt.ToHost[float32](outputs[0])
	if err != nil {
		return fmt.Errorf("starting readback: %w", err)
	}
	result, err := hostFuture.Get(background)
	if err != nil {
		return fmt.Errorf("reading back result: %w", err)
	}

	if len(result) != 1 || result[0] != input+1 {
		fmt.Printf("Unexpected result! %v expected, %v received\n", input+1, result)
	} else {
		fmt.Printf("All good. %v+1 = %v\n", input, result[0])
	}
	return nil
}
