package config

import (
	log "go.arcalot.io/log/v2"
	"go.flow.arcalot.io/assembler/internal/util"
	"go.flow.arcalot.io/pluginsdk/schema"
)

// DefaultLoggerName is the logger name used when the configuration does not set one.
const DefaultLoggerName = "assembler"

// DefaultOutputDirectory is the output directory used when the configuration does not set one.
const DefaultOutputDirectory = "output"

//nolint:funlen
func getConfigSchema() *schema.TypedScopeSchema[*Config] {
	return schema.NewTypedScopeSchema[*Config](
		schema.NewStructMappedObjectSchema[*Config](
			"Config",
			map[string]*schema.PropertySchema{
				"algorithm": schema.NewPropertySchema(
					schema.NewRefSchema("Algorithm", nil),
					schema.NewDisplayValue(
						schema.PointerTo("Algorithm"),
						schema.PointerTo("Task discovery, instantiation policy and pipeline definition."),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					schema.PointerTo("{}"),
					nil,
				),
				"output": schema.NewPropertySchema(
					schema.NewRefSchema("Output", nil),
					schema.NewDisplayValue(
						schema.PointerTo("Output"),
						schema.PointerTo("Output location configuration."),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					schema.PointerTo("{}"),
					nil,
				),
				"logging": schema.NewPropertySchema(
					schema.NewRefSchema("Logging", nil),
					schema.NewDisplayValue(
						schema.PointerTo("Logging"),
						schema.PointerTo("Logging configuration"),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					schema.PointerTo("{}"),
					nil,
				),
			},
		),
		schema.NewStructMappedObjectSchema[Algorithm](
			"Algorithm",
			map[string]*schema.PropertySchema{
				"tasks": schema.NewPropertySchema(
					schema.NewRefSchema("Tasks", nil),
					schema.NewDisplayValue(
						schema.PointerTo("Tasks"),
						schema.PointerTo("Where to discover task classes."),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					schema.PointerTo("{}"),
					nil,
				),
				"iosf": schema.NewPropertySchema(
					schema.NewBoolSchema(),
					schema.NewDisplayValue(
						schema.PointerTo("Ignore on silent fail"),
						schema.PointerTo(
							"Skip tasks that fail to instantiate instead of aborting the instantiation of all tasks.",
						),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					schema.PointerTo("false"),
					nil,
				),
				"executable_containers": schema.NewPropertySchema(
					schema.NewListSchema(
						schema.NewAnySchema(),
						nil,
						nil,
					),
					schema.NewDisplayValue(
						schema.PointerTo("Executable containers"),
						schema.PointerTo(
							"Container definitions, either inline (name, self_loop, entries) or loaded from a "+
								"plugin file (name, path).",
						),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					schema.PointerTo("[]"),
					nil,
				),
				"pipeline": schema.NewPropertySchema(
					schema.NewAnySchema(),
					schema.NewDisplayValue(
						schema.PointerTo("Pipeline"),
						schema.PointerTo("The top-level container to run."),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					nil,
					nil,
				),
			},
		),
		schema.NewStructMappedObjectSchema[Tasks](
			"Tasks",
			map[string]*schema.PropertySchema{
				"paths": schema.NewPropertySchema(
					schema.NewListSchema(
						schema.NewStringSchema(schema.IntPointer(1), nil, nil),
						nil,
						nil,
					),
					schema.NewDisplayValue(
						schema.PointerTo("Paths"),
						schema.PointerTo("Plugin files or directories of plugin files providing task classes."),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					schema.PointerTo("[]"),
					nil,
				),
			},
		),
		schema.NewStructMappedObjectSchema[Output](
			"Output",
			map[string]*schema.PropertySchema{
				"directory": schema.NewPropertySchema(
					schema.NewStringSchema(schema.IntPointer(1), nil, nil),
					schema.NewDisplayValue(
						schema.PointerTo("Output directory"),
						schema.PointerTo("Directory tasks write their results into."),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					schema.PointerTo(util.JSONEncode(DefaultOutputDirectory)),
					nil,
				),
			},
		),
		schema.NewStructMappedObjectSchema[Logging](
			"Logging",
			map[string]*schema.PropertySchema{
				"name": schema.NewPropertySchema(
					schema.NewStringSchema(schema.IntPointer(1), nil, nil),
					schema.NewDisplayValue(
						schema.PointerTo("Logger name"),
						schema.PointerTo("Label attached to every log message."),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					schema.PointerTo(util.JSONEncode(DefaultLoggerName)),
					nil,
				),
				"level": schema.NewPropertySchema(
					schema.NewStringEnumSchema(map[string]*schema.DisplayValue{
						string(log.LevelDebug):   {NameValue: schema.PointerTo("Debug")},
						string(log.LevelInfo):    {NameValue: schema.PointerTo("Informational")},
						string(log.LevelWarning): {NameValue: schema.PointerTo("Warnings")},
						string(log.LevelError):   {NameValue: schema.PointerTo("Errors")},
					}),
					schema.NewDisplayValue(
						schema.PointerTo("Log level"),
						schema.PointerTo(
							"Minimum level of log messages to write.",
						),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					schema.PointerTo(util.JSONEncode(log.LevelInfo)),
					nil,
				),
				"destination": schema.NewPropertySchema(
					schema.NewStringEnumSchema(map[string]*schema.DisplayValue{
						string(log.DestinationStdout): {NameValue: schema.PointerTo("Standard output")},
					}),
					schema.NewDisplayValue(
						schema.PointerTo("Log destination"),
						schema.PointerTo(
							"Where the logs should be written to.",
						),
						nil,
					),
					false,
					nil,
					nil,
					nil,
					schema.PointerTo(util.JSONEncode(log.DestinationStdout)),
					nil,
				),
			},
		),
	)
}
