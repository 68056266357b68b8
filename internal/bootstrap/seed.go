package bootstrap

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quizbase/quizbase/internal/entity"
)

// SeedDemoContent loads a small knowledge base so a fresh install has
// something to browse. It is a no-op once any topic exists.
func SeedDemoContent(ctx context.Context, db *gorm.DB, admin *entity.User, log *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&entity.Topic{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	topics := demoTopics(admin.ID)
	if err := db.WithContext(ctx).Create(&topics).Error; err != nil {
		return err
	}

	log.Info("seeded demo content", zap.Int("topics", len(topics)))
	return nil
}

func demoTopics(createdBy uuid.UUID) []entity.Topic {
	return []entity.Topic{
		{
			Name: "Java Core",
			Icon: "☕",
			Subtopics: []entity.Subtopic{
				{
					Name: "Collections",
					Questions: []entity.Question{
						{
							Question:       "What is the difference between ArrayList and LinkedList?",
							QuickAnswer:    "ArrayList is backed by a resizable array, LinkedList by a doubly linked list.",
							DetailedAnswer: "ArrayList gives O(1) random access and amortized O(1) append, but O(n) insertion in the middle because elements shift. LinkedList gives O(1) insertion and removal at known positions but O(n) access by index. In practice ArrayList wins for almost every workload because of cache locality.",
							CodeExample:    "List<String> names = new ArrayList<>();\nnames.add(\"alice\");\nnames.add(0, \"bob\"); // shifts elements",
							CreatedByID:    createdBy,
						},
						{
							Question:       "How does HashMap handle collisions?",
							QuickAnswer:    "Colliding entries share a bucket as a linked list, converted to a red-black tree past a threshold.",
							DetailedAnswer: "Keys are mapped to buckets by hash. Entries whose keys hash to the same bucket form a chain. Since Java 8, a chain longer than 8 entries is converted to a red-black tree, turning worst-case lookup from O(n) into O(log n).",
							CodeExample:    "Map<String, Integer> ages = new HashMap<>();\nages.put(\"alice\", 30);\nages.getOrDefault(\"bob\", 0);",
							CreatedByID:    createdBy,
						},
					},
				},
				{
					Name: "Streams",
					Questions: []entity.Question{
						{
							Question:       "What is the Stream API and when should you use it?",
							QuickAnswer:    "A declarative pipeline for transforming collections: map, filter, reduce.",
							DetailedAnswer: "A stream is a lazily evaluated sequence of elements. Intermediate operations like map and filter build a pipeline; a terminal operation like collect or reduce runs it. Streams shine for transformation chains and read poorly for code with side effects.",
							CodeExample:    "List<String> upper = names.stream()\n    .filter(n -> n.length() > 3)\n    .map(String::toUpperCase)\n    .toList();",
							CreatedByID:    createdBy,
						},
					},
				},
				{
					Name: "Interfaces",
					Questions: []entity.Question{
						{
							Question:       "What are default methods in interfaces?",
							QuickAnswer:    "Methods with a body declared in an interface, inherited by implementors.",
							DetailedAnswer: "Default methods let an interface evolve without breaking existing implementations. The classic example is Iterable.forEach(): added in Java 8 as a default method so every existing collection gained it for free.",
							CodeExample:    "interface Greeter {\n    default String greet(String name) {\n        return \"hello \" + name;\n    }\n}",
							CreatedByID:    createdBy,
						},
					},
				},
			},
		},
		{
			Name: "Spring Core",
			Icon: "🌱",
			Subtopics: []entity.Subtopic{
				{
					Name: "Dependency Injection",
					Questions: []entity.Question{
						{
							Question:       "Why is constructor injection preferred over field injection?",
							QuickAnswer:    "Dependencies are explicit, final, and the class is testable without the container.",
							DetailedAnswer: "Constructor injection makes required dependencies part of the type's contract, allows final fields, fails fast on missing beans, and lets tests construct the object with plain new. Field injection hides dependencies and couples tests to reflection.",
							CodeExample:    "@Service\npublic class OrderService {\n    private final OrderRepository repo;\n    public OrderService(OrderRepository repo) {\n        this.repo = repo;\n    }\n}",
							CreatedByID:    createdBy,
						},
					},
				},
				{
					Name: "Bean Lifecycle",
					Questions: []entity.Question{
						{
							Question:       "What are the main phases of a Spring bean's lifecycle?",
							QuickAnswer:    "Instantiation, dependency injection, initialization callbacks, use, destruction callbacks.",
							DetailedAnswer: "The container instantiates the bean, injects dependencies, runs BeanPostProcessors and @PostConstruct, then the bean serves requests until the context closes and @PreDestroy runs. Most lifecycle bugs come from doing work in the constructor before injection completes.",
							CodeExample:    "@PostConstruct\nvoid warmCache() {\n    cache.loadAll();\n}",
							CreatedByID:    createdBy,
						},
					},
				},
			},
		},
		{
			Name: "Kafka",
			Icon: "📨",
			Subtopics: []entity.Subtopic{
				{
					Name: "Basics",
					Questions: []entity.Question{
						{
							Question:       "What is a consumer group?",
							QuickAnswer:    "A set of consumers that share a subscription, each partition read by exactly one member.",
							DetailedAnswer: "Consumer groups are how Kafka scales consumption. Partitions of a topic are divided among group members; adding a member triggers a rebalance. Two groups reading the same topic each get every message, which is how fan-out works.",
							CodeExample:    "props.put(\"group.id\", \"billing\");\nconsumer.subscribe(List.of(\"orders\"));",
							CreatedByID:    createdBy,
						},
					},
				},
			},
		},
		{
			Name: "PostgreSQL",
			Icon: "🐘",
			Subtopics: []entity.Subtopic{
				{
					Name: "Indexes",
					Questions: []entity.Question{
						{
							Question:       "When does a B-tree index not help a query?",
							QuickAnswer:    "Leading-wildcard LIKE, functions over the column, and low-selectivity predicates.",
							DetailedAnswer: "A B-tree serves prefix and range scans. LIKE '%term%' cannot use it because there is no prefix to descend on. Wrapping the column in a function defeats it unless the index is built on that expression. And when a predicate matches most rows the planner rightly prefers a sequential scan.",
							CodeExample:    "CREATE INDEX idx_users_lower_email\n    ON users (LOWER(email));",
							CreatedByID:    createdBy,
						},
					},
				},
			},
		},
		{
			Name: "gRPC",
			Icon: "🔗",
			Subtopics: []entity.Subtopic{
				{
					Name: "Protocol Buffers",
					Questions: []entity.Question{
						{
							Question:       "Why must protobuf field numbers never be reused?",
							QuickAnswer:    "Old binaries decode by number; reuse silently misreads persisted or in-flight data.",
							DetailedAnswer: "The wire format carries field numbers, not names. If number 3 once meant user_id and later means email, a reader built against the old schema will decode email bytes as a user id without any error. Reserve removed numbers instead.",
							CodeExample:    "message User {\n    reserved 3;\n    string name = 1;\n    string email = 4;\n}",
							CreatedByID:    createdBy,
						},
					},
				},
			},
		},
	}
}
