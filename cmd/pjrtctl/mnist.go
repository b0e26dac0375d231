package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pjrtgo/pjrtgo/internal/idx"
	"github.com/pjrtgo/pjrtgo/pjrt"
)

var (
	mnistDataDir           string
	mnistInitModelPath     string
	mnistInitOptimizerPath string
	mnistTrainStepPath     string
	mnistNumSteps          int
	mnistBatchSize         int
)

var mnistCmd = &cobra.Command{
	Use:   "mnist",
	Short: "Run the MNIST training-loop StableHLO demo",
	Long:  `Loads the MNIST dataset and runs a fixed number of training steps, reporting loss per step.`,
	RunE:  runMnist,
}

func init() {
	mnistCmd.Flags().StringVar(&mnistDataDir, "data-dir", ".", "directory containing the MNIST idx dataset files")
	mnistCmd.Flags().StringVar(&mnistInitModelPath, "init-model-program", "init_model.stablehlo", "path to the model-init StableHLO program")
	mnistCmd.Flags().StringVar(&mnistInitOptimizerPath, "init-optimizer-program", "init_optimizer.stablehlo", "path to the optimizer-init StableHLO program")
	mnistCmd.Flags().StringVar(&mnistTrainStepPath, "train-step-program", "train_step.stablehlo", "path to the train-step StableHLO program")
	mnistCmd.Flags().IntVar(&mnistNumSteps, "num-steps", 1024, "number of training steps to run")
	mnistCmd.Flags().IntVar(&mnistBatchSize, "batch-size", 128, "training batch size")
	rootCmd.AddCommand(mnistCmd)
}

func runMnist(cmd *cobra.Command, args []string) error {
	background := context.Background()

	initModelHLO, err := os.ReadFile(mnistInitModelPath)
	if err != nil {
		return fmt.Errorf("reading init-model program: %w", err)
	}
	initOptimizerHLO, err := os.ReadFile(mnistInitOptimizerPath)
	if err != nil {
		return fmt.Errorf("reading init-optimizer program: %w", err)
	}
	trainStepHLO, err := os.ReadFile(mnistTrainStepPath)
	if err != nil {
		return fmt.Errorf("reading train-step program: %w", err)
	}

	images, err := idx.ReadImages(mnistDataDir + "/train-images-idx3-ubyte")
	if err != nil {
		return fmt.Errorf("reading MNIST training images: %w", err)
	}
	labels, err := idx.ReadLabels(mnistDataDir + "/train-labels-idx1-ubyte")
	if err != nil {
		return fmt.Errorf("reading MNIST training labels: %w", err)
	}
	if images.Count == 0 || labels.Count == 0 {
		return fmt.Errorf("MNIST training dataset is empty")
	}
	fmt.Printf("Successfully loaded MNIST dataset (%d images)\n", images.Count)

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

	device, err := client.GetFirstDevice()
	if err != nil {
		return fmt.Errorf("getting device: %w", err)
	}

	initModelExe, err := client.CompileFromStableHloString(string(initModelHLO))
	if err != nil {
		return fmt.Errorf("compiling init-model program: %w", err)
	}
	defer initModelExe.Close()

	initOptimizerExe, err := client.CompileFromStableHloString(string(initOptimizerHLO))
	if err != nil {
		return fmt.Errorf("compiling init-optimizer program: %w", err)
	}
	defer initOptimizerExe.Close()

	trainStepExe, err := client.CompileFromStableHloString(string(trainStepHLO))
	if err != nil {
		return fmt.Errorf("compiling train-step program: %w", err)
	}
	defer trainStepExe.Close()

	fmt.Println("Copying model initializing seed to device")
	seedFuture, err := pjrt.TransferToDevice(client, []int32{0}, nil, &device)
	if err != nil {
		return fmt.Errorf("starting seed transfer: %w", err)
	}
	seedBuffer, err := seedFuture.Get(background)
	if err != nil {
		return fmt.Errorf("transferring seed: %w", err)
	}
	defer seedBuffer.Close()

	fmt.Println("Initializing model")
	initModelFuture, err := initModelExe.Execute(&device, []*pjrt.Buffer{seedBuffer})
	if err != nil {
		return fmt.Errorf("launching model init: %w", err)
	}
	modelParams, err := initModelFuture.Get(background)
	if err != nil {
		return fmt.Errorf("initializing model: %w", err)
	}
	fmt.Printf("Model initialized, got back %d buffers\n", len(modelParams))

	fmt.Println("Initializing optimizer")
	initOptimizerFuture, err := initOptimizerExe.Execute(&device, nil)
	if err != nil {
		return fmt.Errorf("launching optimizer init: %w", err)
	}
	optimizerState, err := initOptimizerFuture.Get(background)
	if err != nil {
		return fmt.Errorf("initializing optimizer: %w", err)
	}
	fmt.Printf("Optimizer initialized, got back %d buffers\n", len(optimizerState))

	rows, cols := images.Rows, images.Cols
	for step := 0; step < mnistNumSteps; step++ {
		imageBatch := make([]float32, mnistBatchSize*rows*cols)
		labelBatch := make([]int32, mnistBatchSize)
		for i := 0; i < mnistBatchSize; i++ {
			imageIndex := (step*mnistBatchSize + i) % images.Count
			src := images.Image(imageIndex)
			for j := 0; j < rows*cols; j++ {
				imageBatch[i*rows*cols+j] = float32(src[j]) / 255.0
			}
			labelBatch[i] = int32(labels.Values[imageIndex])
		}

		imageFuture, err := pjrt.TransferToDevice(client, imageBatch, []int64{int64(mnistBatchSize), int64(rows), int64(cols), 1}, &device)
		if err != nil {
			return fmt.Errorf("starting image transfer at step %d: %w", step, err)
		}
		labelFuture, err := pjrt.TransferToDevice(client, labelBatch, []int64{int64(mnistBatchSize)}, &device)
		if err != nil {
			return fmt.Errorf("starting label transfer at step %d: %w", step, err)
		}

		imageBuffer, err := imageFuture.Get(background)
		if err != nil {
			return fmt.Errorf("transferring images at step %d: %w", step, err)
		}
		labelBuffer, err := labelFuture.Get(background)
		if err != nil {
			return fmt.Errorf("transferring labels at step %d: %w", step, err)
		}

		trainArgs := make([]*pjrt.Buffer, 0, len(modelParams)+len(optimizerState)+2)
		trainArgs = append(trainArgs, modelParams...)
		trainArgs = append(trainArgs, optimizerState...)
		trainArgs = append(trainArgs, imageBuffer, labelBuffer)

		start := time.Now()
		trainFuture, err := trainStepExe.Execute(&device, trainArgs)
		if err != nil {
			return fmt.Errorf("launching train step %d: %w", step, err)
		}
		trainResult, err := trainFuture.Get(background)
		if err != nil {
			return fmt.Errorf("running train step %d: %w", step, err)
		}

		paramsEnd := len(modelParams)
		stateEnd := paramsEnd + len(optimizerState)
		for i := 0; i < paramsEnd; i++ {
			modelParams[i].Close()
			modelParams[i] = trainResult[i]
		}
		for i := paramsEnd; i < stateEnd; i++ {
			optimizerState[i-paramsEnd].Close()
			optimizerState[i-paramsEnd] = trainResult[i]
		}
		lossBuffer := trainResult[stateEnd]

		lossFuture, err := pjrt.ToHost[float32](lossBuffer)
		if err != nil {
			return fmt.Errorf("starting loss readback at step %d: %w", step, err)
		}
		lossVec, err := lossFuture.Get(background)
		if err != nil {
			return fmt.Errorf("reading loss at step %d: %w", step, err)
		}
		lossBuffer.Close()
		imageBuffer.Close()
		labelBuffer.Close()

		duration := time.Since(start)
		fmt.Printf("Step %d: Loss = %v (%s)\n", step, lossVec[0], duration)
	}

	for _, b := range modelParams {
		b.Close()
	}
	for _, b := range optimizerState {
		b.Close()
	}
	return nil
}
